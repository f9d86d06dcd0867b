package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-dashboard-be/internal/bootstrap"
	"procurement-dashboard-be/internal/config"
)

// fakeBackend stands in for the analysis API.
type fakeBackend struct {
	analysesCalls int64
	favoriteGone  atomic.Bool
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login/start", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"session_id": "sess-login-1",
			"email":      "user@example.com",
			"expires_at": "2025-03-10T12:15:00",
		})
	})

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
			Code      string `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Code) != 6 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			writeJSON(w, map[string]interface{}{"detail": "Неверный код"})
			return
		}
		writeJSON(w, map[string]interface{}{"access_token": "tok-1", "token_type": "bearer"})
	})

	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]interface{}{"detail": "Не авторизован"})
			return
		}
		writeJSON(w, map[string]interface{}{
			"id": 7, "email": "user@example.com", "phone": "+79991234567",
			"free_checks_left": 2, "tokens_balance": 100,
			"tariff": map[string]interface{}{"id": 1, "name": "Базовый"},
		})
	})

	mux.HandleFunc("POST /api/procurements", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PurchaseID   string `json:"purchase_id"`
			AnalysisType string `json:"analysis_type"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, map[string]interface{}{
			"status": "queued", "purchase_id": req.PurchaseID,
			"task_id": "t-123", "analysis_id": 11, "analysis_type": req.AnalysisType,
		})
	})

	mux.HandleFunc("GET /api/result/t-123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"task_id": "t-123", "analysis_status": "completed", "analysis_id": 11,
			"result": map[string]interface{}{"procurement_id": "0373100000125000001"},
		})
	})

	mux.HandleFunc("GET /api/result/t-fail/analysis", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"task_id": "t-fail", "analysis_status": "failed", "analysis_id": 12,
			"error": "ошибка парсинга документации",
		})
	})

	mux.HandleFunc("GET /api/analyses", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.analysesCalls, 1)
		items := []map[string]interface{}{
			{"id": 42, "purchase_id": "0373100000125000001", "task_id": "t-123",
				"status": "completed", "is_favorite": !f.favoriteGone.Load()},
		}
		writeJSON(w, map[string]interface{}{"items": items})
	})

	mux.HandleFunc("DELETE /api/favorites/42", func(w http.ResponseWriter, r *http.Request) {
		f.favoriteGone.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.LogFilePath = t.TempDir() + "/app.log"
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"
	cfg.App.ClientURL = "http://localhost:5173"
	cfg.Backend.BaseURL = ts.URL
	cfg.Backend.RSSBaseURL = ts.URL + "/rss/%s.xml"
	cfg.Backend.PollSecs = 1
	cfg.Auth.CookieName = "access_token"
	cfg.Auth.CookieTTLDays = 7

	container := bootstrap.NewContainer(cfg)
	t.Cleanup(container.Watches.Shutdown)
	return New(cfg, container), backend
}

func doJSON(t *testing.T, srv *Server, method, path, token, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := srv.GetApp().Test(req, 5000)
	require.NoError(t, err)

	var envelope map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp, envelope
}

func TestLoginSetsSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodPost, "/api/auth/login/start", "",
		`{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, env["success"])

	resp, env = doJSON(t, srv, http.MethodPost, "/api/auth/login", "",
		`{"session_id":"sess-login-1","code":"123456"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie must be set")
	assert.Equal(t, "tok-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	user := env["data"].(map[string]interface{})
	assert.Equal(t, "user@example.com", user["email"])
}

func TestLoginRejectsShortCode(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/auth/login", "",
		`{"session_id":"sess-login-1","code":"123"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDispatchReturnsNavigationPath(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodPost, "/api/procurements", "tok-1",
		`{"purchase_id":"0373100000125000001","analysis_type":"fast"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := env["data"].(map[string]interface{})
	assert.Equal(t, "/procurement/0373100000125000001?task=t-123&from=home", data["location"])

	dispatch := data["dispatch"].(map[string]interface{})
	assert.Equal(t, "queued", dispatch["status"])
	assert.Equal(t, "t-123", dispatch["task_id"])
}

func TestFailedTaskSurfacesBackendError(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodGet,
		"/api/procurements/0373100000125000001/rules?task=t-fail", "tok-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := env["data"].(map[string]interface{})
	banner := report["banner"].(map[string]interface{})
	assert.Equal(t, "failed", banner["state"])
	assert.Equal(t, "ошибка парсинга документации", banner["message"])
	assert.Equal(t, false, banner["polling"])
}

func TestRemoveFavoriteInvalidatesAnalyses(t *testing.T) {
	srv, backend := newTestServer(t)

	// Two reads, one backend call: the second is served from cache.
	doJSON(t, srv, http.MethodGet, "/api/analyses", "tok-1", "")
	doJSON(t, srv, http.MethodGet, "/api/analyses", "tok-1", "")
	assert.EqualValues(t, 1, atomic.LoadInt64(&backend.analysesCalls))

	resp, _ := doJSON(t, srv, http.MethodDelete, "/api/favorites/42", "tok-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, env := doJSON(t, srv, http.MethodGet, "/api/analyses", "tok-1", "")
	assert.EqualValues(t, 2, atomic.LoadInt64(&backend.analysesCalls))

	items := env["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0].(map[string]interface{})["is_favorite"])
}

func TestUnauthorizedWithoutCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Требуется авторизация", env["message"])
}

func TestMeReturnsCachedProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodGet, "/api/me", "tok-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := env["data"].(map[string]interface{})
	assert.Equal(t, "user@example.com", user["email"])
	assert.EqualValues(t, 100, user["tokens_balance"])
}
