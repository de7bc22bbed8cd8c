package handlers

import (
	"github.com/SundayYogurt/placement_service/internal/dto"
	"github.com/SundayYogurt/placement_service/internal/helper/utils"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DriveHandler struct {
	svc services.PlacementService
}

func NewDriveHandler(svc services.PlacementService) *DriveHandler {
	return &DriveHandler{svc: svc}
}

func (h *DriveHandler) SetupRoutes(app *fiber.App) {
	app.Get("/drives", h.ListDrives)
	app.Get("/drives/:id", h.GetDrive)
	app.Post("/create-drive", h.CreateDrive)
	app.Put("/drives/:id/status", h.UpdateStatus)
}

func (h *DriveHandler) ListDrives(ctx *fiber.Ctx) error {
	drives, err := h.svc.ListDrives()
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(drives)
}

func (h *DriveHandler) GetDrive(ctx *fiber.Ctx) error {
	drive, err := h.svc.GetDrive(ctx.Params("id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(drive)
}

func (h *DriveHandler) CreateDrive(ctx *fiber.Ctx) error {
	var requestBody dto.CreateDriveRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	drive, err := h.svc.CreateDrive(requestBody)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(drive)
}

// UpdateStatus is the only mutation of drive status: an explicit
// administrative transition via ?status=.
func (h *DriveHandler) UpdateStatus(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	if status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status query parameter is required")
	}

	drive, err := h.svc.UpdateDriveStatus(ctx.Params("id"), status)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(drive)
}
