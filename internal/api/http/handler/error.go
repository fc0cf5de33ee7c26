package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ryancham715/sav4us/internal/model"
)

// respondError maps service errors to an HTTP status and a single
// human-readable message. Anything not carrying a status is internal.
func respondError(c *fiber.Ctx, err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
