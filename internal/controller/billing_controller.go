// FILE: internal/controller/billing_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/service"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
}

type billingController struct {
	service service.IBillingService
	auth    *AuthMiddleware
}

func NewBillingController(svc service.IBillingService, auth *AuthMiddleware) IBillingController {
	return &billingController{service: svc, auth: auth}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	r.Get("/tariffs", c.auth.RequireAuth(), c.ListTariffs)
	r.Get("/tariffs/current", c.auth.RequireAuth(), c.CurrentTariff)
	r.Get("/payments", c.auth.RequireAuth(), c.ListPayments)
	r.Post("/payments", c.auth.RequireAuth(), c.CreatePayment)
	r.Get("/transactions", c.auth.RequireAuth(), c.ListTransactions)
}

func (c *billingController) ListTariffs(ctx *fiber.Ctx) error {
	res, err := c.service.ListTariffs(ctx.UserContext(), tokenFrom(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}

func (c *billingController) CurrentTariff(ctx *fiber.Ctx) error {
	res, err := c.service.CurrentTariff(ctx.UserContext(), tokenFrom(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}

func (c *billingController) ListPayments(ctx *fiber.Ctx) error {
	res, err := c.service.ListPayments(ctx.UserContext(), tokenFrom(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}

func (c *billingController) CreatePayment(ctx *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreatePayment(ctx.UserContext(), tokenFrom(ctx), &req)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Платёж создан", res))
}

func (c *billingController) ListTransactions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 100)
	res, err := c.service.ListTransactions(ctx.UserContext(), tokenFrom(ctx), limit)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}
