// FILE: internal/controller/procurement_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"procurement-dashboard-be/internal/analysis"
	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/pkg/serverutils"
	"procurement-dashboard-be/internal/procurement"
	"procurement-dashboard-be/internal/service"
)

type IProcurementController interface {
	RegisterRoutes(r fiber.Router)
}

type procurementController struct {
	service service.IProcurementService
	auth    *AuthMiddleware
}

func NewProcurementController(svc service.IProcurementService, auth *AuthMiddleware) IProcurementController {
	return &procurementController{service: svc, auth: auth}
}

func (c *procurementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/procurements", c.auth.RequireAuth())
	h.Post("/", c.Dispatch)
	h.Get("/:id/view", c.View)
	h.Get("/:id/rules", c.Rules)
	h.Get("/:id/rss", c.RSS)

	res := r.Group("/results", c.auth.RequireAuth())
	res.Get("/:taskId", c.TaskStatus)
	res.Get("/:taskId/summary.pdf", c.SummaryPDF)
}

// Dispatch starts an analysis and answers with the path the client should
// navigate to while the task is polled.
func (c *procurementController) Dispatch(ctx *fiber.Ctx) error {
	var req dto.DispatchProcurementRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Dispatch(ctx.UserContext(), tokenFrom(ctx), userFrom(ctx), &req)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Анализ запущен", fiber.Map{
		"dispatch": res,
		"location": "/procurement/" + res.PurchaseID + "?task=" + res.TaskID + "&from=home",
	}))
}

func (c *procurementController) View(ctx *fiber.Ctx) error {
	state := procurement.DefaultUIState()
	if section := ctx.Query("section"); section != "" {
		id := procurement.SectionID(section)
		if !procurement.KnownSection(id) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown section")
		}
		state.ActiveSection = id
	}
	state.ActiveLot = ctx.QueryInt("lot", 0)

	view, err := c.service.GetView(
		ctx.UserContext(),
		tokenFrom(ctx),
		ctx.Params("id"),
		state,
		ctx.Query("task"),
		ctx.Query("from"),
	)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", view))
}

func (c *procurementController) RSS(ctx *fiber.Ctx) error {
	events, err := c.service.GetRSSEvents(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", events))
}

func (c *procurementController) TaskStatus(ctx *fiber.Ctx) error {
	status, err := c.service.TaskStatus(ctx.UserContext(), tokenFrom(ctx), ctx.Params("taskId"))
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", status))
}

func (c *procurementController) Rules(ctx *fiber.Ctx) error {
	taskID := ctx.Query("task")
	if taskID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "task is required")
	}

	filter := analysis.RuleFilter(ctx.Query("filter", string(analysis.FilterAll)))
	if !analysis.ValidFilter(filter) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown filter")
	}

	report, err := c.service.GetRules(ctx.UserContext(), tokenFrom(ctx), taskID, filter)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("", report))
}

func (c *procurementController) SummaryPDF(ctx *fiber.Ctx) error {
	data, err := c.service.DownloadSummaryPDF(ctx.UserContext(), tokenFrom(ctx), ctx.Params("taskId"))
	if err != nil {
		return serviceError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="summary.pdf"`)
	return ctx.Send(data)
}
