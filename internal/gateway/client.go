// FILE: internal/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/logger"
)

// Client is the single point of contact with the analysis backend: one
// method per endpoint, no business logic. The caller supplies the bearer
// token (the session owns cookie storage); an empty token sends no header.
type Client struct {
	baseURL    string
	rssBaseURL string
	httpClient *http.Client
	log        logger.ILogger
}

func NewClient(baseURL, rssBaseURL string, log logger.ILogger) *Client {
	return &Client{
		baseURL:    baseURL,
		rssBaseURL: rssBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

func (c *Client) request(ctx context.Context, method, endpoint, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, raw)
		c.log.Warn("gateway", "backend request failed", map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"error":    apiErr.Message,
		})
		return apiErr
	}

	// 204 resolves to an empty result.
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}

// requestBytes is the binary variant (PDF download): no JSON parsing of the
// success body, generic error on failure.
func (c *Client) requestBytes(ctx context.Context, endpoint, token, failMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: failMsg}
	}

	return io.ReadAll(resp.Body)
}

// --- Registration ---

func (c *Client) StartRegistration(ctx context.Context, req *dto.StartRegistrationRequest) (*dto.StartRegistrationResponse, error) {
	var res dto.StartRegistrationResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register/start", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyRegistration(ctx context.Context, req *dto.VerifyRegistrationRequest) (*dto.RegistrationStateResponse, error) {
	var res dto.RegistrationStateResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register/verify", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) StartPhoneRegistration(ctx context.Context, req *dto.StartPhoneRegistrationRequest) (*dto.StartPhoneRegistrationResponse, error) {
	var res dto.StartPhoneRegistrationResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register/phone", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyPhone(ctx context.Context, req *dto.VerifyRegistrationRequest) (*dto.RegistrationStateResponse, error) {
	var res dto.RegistrationStateResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register/verify-phone", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CompleteRegistration(ctx context.Context, req *dto.CompleteRegistrationRequest) (*dto.TokenResponse, error) {
	var res dto.TokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register/complete", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Login ---

func (c *Client) StartLogin(ctx context.Context, req *dto.StartLoginRequest) (*dto.StartLoginResponse, error) {
	var res dto.StartLoginResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/login/start", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var res dto.TokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/login", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Yandex OAuth ---

func (c *Client) StartYandexAuth(ctx context.Context, state string) (*dto.YandexStartResponse, error) {
	endpoint := "/api/auth/yandex/start"
	if state != "" {
		endpoint += "?state=" + url.QueryEscape(state)
	}
	var res dto.YandexStartResponse
	if err := c.request(ctx, http.MethodGet, endpoint, "", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) YandexCallback(ctx context.Context, req *dto.YandexCallbackRequest) (*dto.TokenResponse, error) {
	var res dto.TokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/yandex/callback", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Profile ---

func (c *Client) GetMe(ctx context.Context, token string) (*dto.User, error) {
	var res dto.User
	if err := c.request(ctx, http.MethodGet, "/api/auth/me", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, req *dto.UpdateUserRequest) (*dto.User, error) {
	var res dto.User
	if err := c.request(ctx, http.MethodPatch, "/api/auth/me", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Billing ---

func (c *Client) ListTariffs(ctx context.Context, token string) (*dto.TariffsListResponse, error) {
	var res dto.TariffsListResponse
	if err := c.request(ctx, http.MethodGet, "/api/tariffs", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetCurrentTariff(ctx context.Context, token string) (*dto.CurrentTariffResponse, error) {
	var res dto.CurrentTariffResponse
	if err := c.request(ctx, http.MethodGet, "/api/tariffs/current", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListPayments(ctx context.Context, token string) (*dto.PaymentsListResponse, error) {
	var res dto.PaymentsListResponse
	if err := c.request(ctx, http.MethodGet, "/api/billing/payments", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreatePayment(ctx context.Context, token string, req *dto.CreatePaymentRequest) (*dto.Payment, error) {
	var res dto.Payment
	if err := c.request(ctx, http.MethodPost, "/api/billing/payments", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListTokenTransactions(ctx context.Context, token string, limit int) (*dto.TokenTransactionsResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	var res dto.TokenTransactionsResponse
	endpoint := "/api/billing/transactions?limit=" + strconv.Itoa(limit)
	if err := c.request(ctx, http.MethodGet, endpoint, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Procurement / analysis ---

func (c *Client) GetProcurementBody(ctx context.Context, token, purchaseID string) (*dto.ProcurementBody, error) {
	var res dto.ProcurementBody
	endpoint := "/api/procurements/" + url.PathEscape(purchaseID) + "/body"
	if err := c.request(ctx, http.MethodGet, endpoint, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DispatchProcurement(ctx context.Context, token string, req *dto.DispatchProcurementRequest) (*dto.DispatchProcurementResponse, error) {
	var res dto.DispatchProcurementResponse
	if err := c.request(ctx, http.MethodPost, "/api/procurements", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetTaskResult(ctx context.Context, token, taskID string) (*dto.TaskStatus, error) {
	var res dto.TaskStatus
	endpoint := "/api/result/" + url.PathEscape(taskID)
	if err := c.request(ctx, http.MethodGet, endpoint, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetTaskAnalysis(ctx context.Context, token, taskID string) (*dto.TaskStatus, error) {
	var res dto.TaskStatus
	endpoint := "/api/result/" + url.PathEscape(taskID) + "/analysis"
	if err := c.request(ctx, http.MethodGet, endpoint, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DownloadAnalysisSummaryPDF(ctx context.Context, token, taskID string) ([]byte, error) {
	endpoint := "/api/result/" + url.PathEscape(taskID) + "/analysis/summary"
	return c.requestBytes(ctx, endpoint, token, "Не удалось скачать отчёт")
}

// --- Favorites / history ---

func (c *Client) ListAnalyses(ctx context.Context, token string, statuses []dto.AnalysisStatus) (*dto.AnalysesListResponse, error) {
	endpoint := "/api/analyses"
	if len(statuses) > 0 {
		q := url.Values{}
		for _, s := range statuses {
			q.Add("statuses", string(s))
		}
		endpoint += "?" + q.Encode()
	}
	var res dto.AnalysesListResponse
	if err := c.request(ctx, http.MethodGet, endpoint, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AddFavorite(ctx context.Context, token string, req *dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	var res dto.FavoriteResponse
	if err := c.request(ctx, http.MethodPost, "/api/favorites", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, analysisID int) error {
	endpoint := "/api/favorites/" + strconv.Itoa(analysisID)
	return c.request(ctx, http.MethodDelete, endpoint, token, nil, nil)
}

// --- Public procurement portal RSS ---

func (c *Client) FetchRSS(ctx context.Context, purchaseID string) ([]byte, error) {
	feedURL := fmt.Sprintf(c.rssBaseURL, url.PathEscape(purchaseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "Не удалось загрузить RSS ленту"}
	}

	return io.ReadAll(resp.Body)
}
