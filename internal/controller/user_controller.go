// FILE: internal/controller/user_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
}

type userController struct {
	service service.IUserService
	auth    *AuthMiddleware
}

func NewUserController(svc service.IUserService, auth *AuthMiddleware) IUserController {
	return &userController{service: svc, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/me", c.auth.RequireAuth())
	h.Get("/", c.GetProfile)
	h.Patch("/", c.UpdateProfile)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("", userFrom(ctx)))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := c.service.UpdateProfile(ctx.UserContext(), tokenFrom(ctx), &req)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Профиль обновлён", user))
}
