// FILE: internal/dto/auth_dto.go
package dto

// --- Registration DTOs ---

type StartRegistrationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type StartRegistrationResponse struct {
	SessionID      string `json:"session_id"`
	Email          string `json:"email"`
	ExpiresAt      string `json:"expires_at"`
	DebugEmailCode string `json:"debug_email_code,omitempty"`
}

type VerifyRegistrationRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
}

type RegistrationStateResponse struct {
	SessionID     string `json:"session_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Phone         string `json:"phone"`
	PhoneVerified bool   `json:"phone_verified"`
	ExpiresAt     string `json:"expires_at"`
}

type StartPhoneRegistrationRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Phone     string `json:"phone" validate:"required,e164"`
}

type StartPhoneRegistrationResponse struct {
	SessionID      string `json:"session_id"`
	Phone          string `json:"phone"`
	ExpiresAt      string `json:"expires_at"`
	DebugPhoneCode string `json:"debug_phone_code,omitempty"`
}

type CompleteRegistrationRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Flow-scoped requests: the client only ever holds the flow id, never the
// backend OTP session.
type FlowRequest struct {
	FlowID string `json:"flow_id" validate:"required"`
}

type FlowCodeRequest struct {
	FlowID string `json:"flow_id" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type FlowPhoneRequest struct {
	FlowID string `json:"flow_id" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}

// RegistrationFlowResponse reflects the server-side flow state after each
// step, so the client renders whatever screen the flow says is current.
type RegistrationFlowResponse struct {
	FlowID         string `json:"flow_id"`
	Step           string `json:"step"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	EmailCodeSent  bool   `json:"email_code_sent"`
	PhoneCodeSent  bool   `json:"phone_code_sent"`
	DebugEmailCode string `json:"debug_email_code,omitempty"`
	DebugPhoneCode string `json:"debug_phone_code,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Login DTOs ---

type StartLoginRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,e164"`
}

type StartLoginResponse struct {
	SessionID      string `json:"session_id"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ExpiresAt      string `json:"expires_at"`
	DebugEmailCode string `json:"debug_email_code,omitempty"`
	DebugPhoneCode string `json:"debug_phone_code,omitempty"`
}

type LoginRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
}

// --- OAuth DTOs ---

type YandexStartResponse struct {
	AuthURL string `json:"auth_url"`
}

type YandexCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

// --- Profile DTOs ---

type Tariff struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TokenLimit int    `json:"token_limit"`
	IsDefault  bool   `json:"is_default"`
}

type User struct {
	ID              int     `json:"id"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	FreeChecksLeft  int     `json:"free_checks_left"`
	TokensBalance   int     `json:"tokens_balance"`
	Tariff          Tariff  `json:"tariff"`
	OrgName         *string `json:"org_name"`
	OrgINN          *string `json:"org_inn"`
	OrgKPP          *string `json:"org_kpp"`
	OrgLegalAddress *string `json:"org_legal_address"`
	OrgContactEmail *string `json:"org_contact_email"`
	CreatedAt       string  `json:"created_at"`
}

type UpdateUserRequest struct {
	OrgName         *string `json:"org_name,omitempty"`
	OrgINN          *string `json:"org_inn,omitempty"`
	OrgKPP          *string `json:"org_kpp,omitempty"`
	OrgLegalAddress *string `json:"org_legal_address,omitempty"`
	OrgContactEmail *string `json:"org_contact_email,omitempty" validate:"omitempty,email"`
}
