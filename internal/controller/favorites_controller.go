// FILE: internal/controller/favorites_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/service"
)

type IFavoritesController interface {
	RegisterRoutes(r fiber.Router)
}

type favoritesController struct {
	service service.IFavoritesService
	auth    *AuthMiddleware
}

func NewFavoritesController(svc service.IFavoritesService, auth *AuthMiddleware) IFavoritesController {
	return &favoritesController{service: svc, auth: auth}
}

func (c *favoritesController) RegisterRoutes(r fiber.Router) {
	r.Get("/analyses", c.auth.RequireAuth(), c.ListAnalyses)

	h := r.Group("/favorites", c.auth.RequireAuth())
	h.Get("/", c.ListFavorites)
	h.Post("/", c.AddFavorite)
	h.Delete("/:analysisId", c.RemoveFavorite)
}

func (c *favoritesController) ListAnalyses(ctx *fiber.Ctx) error {
	statuses := parseStatuses(ctx.Query("statuses"))
	res, err := c.service.ListAnalyses(ctx.UserContext(), tokenFrom(ctx), statuses, false)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}

func (c *favoritesController) ListFavorites(ctx *fiber.Ctx) error {
	res, err := c.service.ListAnalyses(ctx.UserContext(), tokenFrom(ctx), nil, true)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", res))
}

func (c *favoritesController) AddFavorite(ctx *fiber.Ctx) error {
	var req dto.AddFavoriteRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddFavorite(ctx.UserContext(), tokenFrom(ctx), req.AnalysisID)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Добавлено в избранное", res))
}

func (c *favoritesController) RemoveFavorite(ctx *fiber.Ctx) error {
	analysisID, err := ctx.ParamsInt("analysisId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid analysis id")
	}

	if err := c.service.RemoveFavorite(ctx.UserContext(), tokenFrom(ctx), analysisID); err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Удалено из избранного", nil))
}

func parseStatuses(q string) []dto.AnalysisStatus {
	if q == "" {
		return nil
	}
	parts := strings.Split(q, ",")
	out := make([]dto.AnalysisStatus, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, dto.AnalysisStatus(p))
		}
	}
	return out
}
