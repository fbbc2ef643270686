package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/nearest-service/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *apperrors.AppError `json:"error"`
}

func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Неизвестная ошибка - 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: apperrors.ErrInternalServer,
	})
}
