package utils

import (
	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

func ResponseMessage(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(dto.MessageResponse{Message: msg})
}

func ResponseJSON(ctx *fiber.Ctx, status int, body interface{}) error {
	return ctx.Status(status).JSON(body)
}

func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindAuth:
		return fiber.StatusUnauthorized
	case domain.KindNotVerified, domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ResponseFromError writes err as {error: message} with the status of its kind.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	return ResponseError(ctx, StatusOf(err), domain.MessageOf(err))
}
