// FILE: internal/controller/auth_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/service"
	"procurement-dashboard-be/internal/session"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
}

type authController struct {
	service   service.IAuthService
	sessions  *session.Manager
	clientURL string
}

func NewAuthController(svc service.IAuthService, sessions *session.Manager, clientURL string) IAuthController {
	return &authController{service: svc, sessions: sessions, clientURL: clientURL}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")

	reg := h.Group("/register")
	reg.Post("/start", c.StartRegistration)
	reg.Post("/verify", c.VerifyEmail)
	reg.Post("/phone", c.StartPhone)
	reg.Post("/verify-phone", c.VerifyPhone)
	reg.Post("/complete", c.Complete)
	reg.Post("/back", c.Back)

	h.Post("/login/start", c.StartLogin)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)

	h.Get("/yandex/start", c.YandexStart)
	h.Get("/yandex/callback", c.YandexCallback)
}

func (c *authController) StartRegistration(ctx *fiber.Ctx) error {
	var req dto.StartRegistrationRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.StartRegistration(ctx.UserContext(), req.Email)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Код подтверждения отправлен на почту", res))
}

func (c *authController) VerifyEmail(ctx *fiber.Ctx) error {
	var req dto.FlowCodeRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.VerifyRegistrationEmail(ctx.UserContext(), req.FlowID, req.Code)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Почта подтверждена", res))
}

func (c *authController) StartPhone(ctx *fiber.Ctx) error {
	var req dto.FlowPhoneRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.StartPhoneRegistration(ctx.UserContext(), req.FlowID, req.Phone)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Код подтверждения отправлен на телефон", res))
}

func (c *authController) VerifyPhone(ctx *fiber.Ctx) error {
	var req dto.FlowCodeRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.VerifyRegistrationPhone(ctx.UserContext(), req.FlowID, req.Code)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Телефон подтверждён", res))
}

func (c *authController) Complete(ctx *fiber.Ctx) error {
	var req dto.FlowRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	token, err := c.service.CompleteRegistration(ctx.UserContext(), req.FlowID)
	if err != nil {
		return serviceError(ctx, err)
	}

	user, err := c.sessions.Establish(ctx, token)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Регистрация завершена", user))
}

func (c *authController) Back(ctx *fiber.Ctx) error {
	var req dto.FlowRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.StepBack(req.FlowID)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Шаг назад", res))
}

func (c *authController) StartLogin(ctx *fiber.Ctx) error {
	var req dto.StartLoginRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.StartLogin(ctx.UserContext(), &req)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Код подтверждения отправлен", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	token, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return serviceError(ctx, err)
	}

	user, err := c.sessions.Establish(ctx, token)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Вход выполнен", user))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	c.sessions.Terminate(ctx, c.sessions.Token(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Выход выполнен", nil))
}

func (c *authController) YandexStart(ctx *fiber.Ctx) error {
	authURL, err := c.service.YandexAuthURL(ctx.UserContext())
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", dto.YandexStartResponse{AuthURL: authURL}))
}

// YandexCallback lands the browser from the provider: the session cookie is
// set here, then the user is sent back to the app.
func (c *authController) YandexCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	state := ctx.Query("state")
	if code == "" || state == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing code or state")
	}

	token, err := c.service.YandexCallback(ctx.UserContext(), code, state)
	if err != nil {
		return serviceError(ctx, err)
	}

	if _, err := c.sessions.Establish(ctx, token); err != nil {
		return serviceError(ctx, err)
	}
	return ctx.Redirect(c.clientURL, fiber.StatusFound)
}
