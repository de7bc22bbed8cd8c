package handlers

import (
	"github.com/SundayYogurt/placement_service/internal/helper/utils"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	svc services.PlacementService
}

func NewAnalyticsHandler(svc services.PlacementService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) SetupRoutes(app *fiber.App) {
	app.Get("/analytics/overview", h.Overview)
	app.Get("/analytics/drive/:id", h.Drive)
}

func (h *AnalyticsHandler) Overview(ctx *fiber.Ctx) error {
	overview, err := h.svc.OverviewAnalytics()
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(overview)
}

func (h *AnalyticsHandler) Drive(ctx *fiber.Ctx) error {
	analytics, err := h.svc.DriveAnalytics(ctx.Params("id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(analytics)
}
