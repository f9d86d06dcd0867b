// FILE: internal/session/session.go
//
// Session lifecycle around the backend access token. The token lives in an
// HttpOnly cookie; authentication state is derived from whether the profile
// endpoint accepts the token, there is no local token introspection.
package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/querycache"
)

type Manager struct {
	gw         *gateway.Client
	cache      *querycache.Cache
	log        logger.ILogger
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

func NewManager(gw *gateway.Client, cache *querycache.Cache, log logger.ILogger, cookieName string, ttlDays int, secure bool) *Manager {
	return &Manager{
		gw:         gw,
		cache:      cache,
		log:        log,
		cookieName: cookieName,
		cookieTTL:  time.Duration(ttlDays) * 24 * time.Hour,
		secure:     secure,
	}
}

// Token extracts the access token from the cookie, falling back to a bearer
// header for non-browser clients. Empty string means anonymous.
func (m *Manager) Token(c *fiber.Ctx) string {
	if t := c.Cookies(m.cookieName); t != "" {
		return t
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Establish stores the token in the session cookie and warms the profile
// cache with a single fetch. Returns the profile so login responses can
// include it.
func (m *Manager) Establish(c *fiber.Ctx, token string) (*dto.User, error) {
	user, err := m.gw.GetMe(c.UserContext(), token)
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Expires:  time.Now().Add(m.cookieTTL),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})

	scope := querycache.TokenScope(token)
	m.cache.Set(querycache.Key(scope, querycache.ResourceUser), user)
	m.log.Info("session", "session established", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// CurrentUser resolves the profile for a token, cached.
func (m *Manager) CurrentUser(c *fiber.Ctx, token string) (*dto.User, error) {
	scope := querycache.TokenScope(token)
	key := querycache.Key(scope, querycache.ResourceUser)
	if v, ok := m.cache.Get(key); ok {
		return v.(*dto.User), nil
	}

	user, err := m.gw.GetMe(c.UserContext(), token)
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, user)
	return user, nil
}

// InvalidateUser drops the cached profile, forcing a refetch on next read.
func (m *Manager) InvalidateUser(token string) {
	m.cache.Invalidate(querycache.TokenScope(token), querycache.ResourceUser)
}

// Terminate clears the cookie and every cache entry scoped to the session.
func (m *Manager) Terminate(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	if token != "" {
		m.cache.ClearScope(querycache.TokenScope(token))
	}
	m.log.Info("session", "session terminated", nil)
}
