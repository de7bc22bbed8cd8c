package handlers

import (
	"github.com/SundayYogurt/placement_service/internal/dto"
	"github.com/SundayYogurt/placement_service/internal/helper/utils"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	svc services.PlacementService
}

func NewApplicationHandler(svc services.PlacementService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) SetupRoutes(app *fiber.App) {
	app.Post("/apply", h.Apply)
	app.Get("/applications/:student_id", h.StudentApplications)
	app.Get("/shortlist/:drive_id", h.Shortlist)
	app.Post("/shortlist/approve", h.Approve)
}

func (h *ApplicationHandler) Apply(ctx *fiber.Ctx) error {
	var requestBody dto.ApplyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "student_id and drive_id are required")
	}
	if requestBody.StudentID == "" || requestBody.DriveID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "student_id and drive_id are required")
	}

	resp, err := h.svc.Apply(ctx.UserContext(), requestBody.StudentID, requestBody.DriveID)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(resp)
}

func (h *ApplicationHandler) StudentApplications(ctx *fiber.Ctx) error {
	apps, err := h.svc.StudentApplications(ctx.Params("student_id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(apps)
}

func (h *ApplicationHandler) Shortlist(ctx *fiber.Ctx) error {
	resp, err := h.svc.Shortlist(ctx.Params("drive_id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(resp)
}

func (h *ApplicationHandler) Approve(ctx *fiber.Ctx) error {
	var requestBody dto.ApproveRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "student_id, drive_id and approved_by are required")
	}
	if requestBody.StudentID == "" || requestBody.DriveID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "student_id and drive_id are required")
	}

	app, err := h.svc.Approve(ctx.UserContext(), requestBody.StudentID, requestBody.DriveID, requestBody.ApprovedBy)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(app)
}
