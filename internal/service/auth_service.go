// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/yandex"

	"procurement-dashboard-be/internal/authflow"
	"procurement-dashboard-be/internal/config"
	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/format"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
)

var ErrInvalidOAuthState = errors.New("invalid oauth state")

type IAuthService interface {
	StartRegistration(ctx context.Context, email string) (*dto.RegistrationFlowResponse, error)
	VerifyRegistrationEmail(ctx context.Context, flowID, code string) (*dto.RegistrationFlowResponse, error)
	StartPhoneRegistration(ctx context.Context, flowID, phone string) (*dto.RegistrationFlowResponse, error)
	VerifyRegistrationPhone(ctx context.Context, flowID, code string) (*dto.RegistrationFlowResponse, error)
	CompleteRegistration(ctx context.Context, flowID string) (string, error)
	StepBack(flowID string) (*dto.RegistrationFlowResponse, error)
	StartLogin(ctx context.Context, req *dto.StartLoginRequest) (*dto.StartLoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	YandexAuthURL(ctx context.Context) (string, error)
	YandexCallback(ctx context.Context, code, state string) (string, error)
}

type authService struct {
	gw         *gateway.Client
	flows      *authflow.Store
	yandexConf *oauth2.Config
	stateKey   []byte
	log        logger.ILogger
}

func NewAuthService(gw *gateway.Client, flows *authflow.Store, cfg *config.AuthConfig, log logger.ILogger) IAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.YandexClientID,
		ClientSecret: cfg.YandexSecret,
		RedirectURL:  cfg.YandexRedirect,
		Scopes:       []string{"login:email", "login:info"},
		Endpoint:     yandex.Endpoint,
	}

	return &authService{
		gw:         gw,
		flows:      flows,
		yandexConf: conf,
		stateKey:   []byte(cfg.StateSecret),
		log:        log,
	}
}

// --- Registration ---

func (s *authService) StartRegistration(ctx context.Context, email string) (*dto.RegistrationFlowResponse, error) {
	res, err := s.gw.StartRegistration(ctx, &dto.StartRegistrationRequest{Email: email})
	if err != nil {
		return nil, err
	}

	flow := s.flows.Create()
	if err := flow.EmailStarted(res.SessionID, res.Email); err != nil {
		return nil, err
	}
	s.flows.Save(flow)

	s.log.Info("auth", "registration started", map[string]interface{}{
		"flow_id": flow.ID,
	})
	return flowResponse(flow, res.DebugEmailCode, ""), nil
}

func (s *authService) VerifyRegistrationEmail(ctx context.Context, flowID, code string) (*dto.RegistrationFlowResponse, error) {
	flow, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	flow.EmailCodeEntry = code

	if _, err := s.gw.VerifyRegistration(ctx, &dto.VerifyRegistrationRequest{
		SessionID: flow.SessionID,
		Code:      code,
	}); err != nil {
		s.flows.Save(flow)
		return nil, err
	}

	if err := flow.EmailVerified(); err != nil {
		return nil, err
	}
	s.flows.Save(flow)
	return flowResponse(flow, "", ""), nil
}

func (s *authService) StartPhoneRegistration(ctx context.Context, flowID, phone string) (*dto.RegistrationFlowResponse, error) {
	flow, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}

	normalized := format.PhoneDigits(phone)
	res, err := s.gw.StartPhoneRegistration(ctx, &dto.StartPhoneRegistrationRequest{
		SessionID: flow.SessionID,
		Phone:     normalized,
	})
	if err != nil {
		return nil, err
	}

	if err := flow.PhoneStarted(res.Phone); err != nil {
		return nil, err
	}
	s.flows.Save(flow)
	return flowResponse(flow, "", res.DebugPhoneCode), nil
}

func (s *authService) VerifyRegistrationPhone(ctx context.Context, flowID, code string) (*dto.RegistrationFlowResponse, error) {
	flow, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	flow.PhoneCodeEntry = code

	if _, err := s.gw.VerifyPhone(ctx, &dto.VerifyRegistrationRequest{
		SessionID: flow.SessionID,
		Code:      code,
	}); err != nil {
		s.flows.Save(flow)
		return nil, err
	}

	if err := flow.PhoneVerified(); err != nil {
		return nil, err
	}
	s.flows.Save(flow)
	return flowResponse(flow, "", ""), nil
}

func (s *authService) CompleteRegistration(ctx context.Context, flowID string) (string, error) {
	flow, err := s.flows.Get(flowID)
	if err != nil {
		return "", err
	}
	if flow.Step != authflow.StepComplete {
		return "", authflow.ErrInvalidTransition
	}

	res, err := s.gw.CompleteRegistration(ctx, &dto.CompleteRegistrationRequest{SessionID: flow.SessionID})
	if err != nil {
		return "", err
	}

	s.flows.Delete(flow.ID)
	s.log.Info("auth", "registration completed", map[string]interface{}{
		"flow_id": flow.ID,
	})
	return res.AccessToken, nil
}

func (s *authService) StepBack(flowID string) (*dto.RegistrationFlowResponse, error) {
	flow, err := s.flows.Get(flowID)
	if err != nil {
		return nil, err
	}
	if err := flow.Back(); err != nil {
		return nil, err
	}
	s.flows.Save(flow)
	return flowResponse(flow, "", ""), nil
}

func flowResponse(f *authflow.Flow, debugEmailCode, debugPhoneCode string) *dto.RegistrationFlowResponse {
	return &dto.RegistrationFlowResponse{
		FlowID:         f.ID,
		Step:           string(f.Step),
		Email:          f.Email,
		Phone:          f.Phone,
		EmailCodeSent:  f.EmailCodeSent,
		PhoneCodeSent:  f.PhoneCodeSent,
		DebugEmailCode: debugEmailCode,
		DebugPhoneCode: debugPhoneCode,
	}
}

// --- Login ---

func (s *authService) StartLogin(ctx context.Context, req *dto.StartLoginRequest) (*dto.StartLoginResponse, error) {
	if req.Email == "" && req.Phone == "" {
		return nil, errors.New("email or phone is required")
	}
	if req.Phone != "" {
		req.Phone = format.PhoneDigits(req.Phone)
	}
	return s.gw.StartLogin(ctx, req)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	res, err := s.gw.Login(ctx, req)
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

// --- Yandex OAuth ---

// YandexAuthURL builds the provider redirect with a signed, short-lived
// state so the callback cannot be replayed or forged. Without local client
// credentials the URL comes from the backend instead.
func (s *authService) YandexAuthURL(ctx context.Context) (string, error) {
	claims := jwt.MapClaims{
		"nonce": uuid.NewString(),
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.stateKey)
	if err != nil {
		return "", err
	}

	if s.yandexConf.ClientID == "" {
		res, err := s.gw.StartYandexAuth(ctx, state)
		if err != nil {
			return "", err
		}
		return res.AuthURL, nil
	}
	return s.yandexConf.AuthCodeURL(state), nil
}

func (s *authService) YandexCallback(ctx context.Context, code, state string) (string, error) {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.stateKey, nil
	})
	if err != nil || !token.Valid {
		s.log.Warn("auth", "oauth state validation failed", map[string]interface{}{
			"error": fmt.Sprint(err),
		})
		return "", ErrInvalidOAuthState
	}

	res, err := s.gw.YandexCallback(ctx, &dto.YandexCallbackRequest{Code: code, State: state})
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}
