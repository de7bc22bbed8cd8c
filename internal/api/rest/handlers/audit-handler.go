package handlers

import (
	"github.com/SundayYogurt/placement_service/internal/helper/utils"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Interactive queries are capped; exports are not (an export must be the
// complete filtered set).
const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type AuditHandler struct {
	svc services.AuditService
}

func NewAuditHandler(svc services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) SetupRoutes(app *fiber.App) {
	app.Get("/audit-logs", h.Query)
	app.Get("/audit-logs/export/json", h.ExportJSON)
	app.Get("/audit-logs/export/csv", h.ExportCSV)
}

func (h *AuditHandler) Query(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", defaultAuditLimit)
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	entries, err := h.svc.Query(ctx.Query("student_id"), ctx.Query("drive_id"), limit)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(entries)
}

func (h *AuditHandler) ExportJSON(ctx *fiber.Ctx) error {
	payload, err := h.svc.ExportJSON(ctx.Query("student_id"), ctx.Query("drive_id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="audit_logs.json"`)
	return ctx.Send(payload)
}

func (h *AuditHandler) ExportCSV(ctx *fiber.Ctx) error {
	payload, err := h.svc.ExportCSV(ctx.Query("student_id"), ctx.Query("drive_id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="audit_logs.csv"`)
	return ctx.Send(payload)
}
