// FILE: internal/controller/middleware.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/session"
)

var validate = validator.New()

// parseAndValidate binds the JSON body and runs struct validation; failures
// surface as 400 with the first offending field.
func parseAndValidate(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid field: "+verrs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// serviceError maps backend failures onto the response envelope, keeping
// the upstream status code when there is one.
func serviceError(ctx *fiber.Ctx, err error) error {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return ctx.Status(apiErr.StatusCode).JSON(serverutils.ErrorResponse(apiErr.StatusCode, apiErr.Message))
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
}

const (
	localToken = "token"
	localUser  = "user"
)

type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth resolves the session token to a profile; authentication state
// is exactly "the backend accepted the token".
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := m.sessions.Token(ctx)
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				serverutils.ErrorResponse(fiber.StatusUnauthorized, "Требуется авторизация"))
		}

		user, err := m.sessions.CurrentUser(ctx, token)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				serverutils.ErrorResponse(fiber.StatusUnauthorized, "Сессия истекла"))
		}

		ctx.Locals(localToken, token)
		ctx.Locals(localUser, user)
		return ctx.Next()
	}
}

func tokenFrom(ctx *fiber.Ctx) string {
	if t, ok := ctx.Locals(localToken).(string); ok {
		return t
	}
	return ""
}

func userFrom(ctx *fiber.Ctx) *dto.User {
	if u, ok := ctx.Locals(localUser).(*dto.User); ok {
		return u
	}
	return nil
}
