package utils

import (
	"errors"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ResponseDomainError maps the service error kinds onto HTTP statuses.
// Validation and lookup problems are 4xx; scoring and storage outages are
// 5xx so callers can tell a rejection from a failure.
func ResponseDomainError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateApplication):
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrScoringUnavailable):
		return ResponseError(ctx, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return ResponseError(ctx, fiber.StatusServiceUnavailable, err.Error())
	}
	return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
}
