package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a domain error into the HTTP taxonomy: 404 for
// ErrNotFound, 409 for ErrConflict, 401 for credential/token failures and
// 500 for everything else. Only the sentinel's message is echoed; whatever
// detail got wrapped around it stays server-side.
func respondError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   models.ErrNotFound.Error(),
		})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": message,
			"error":   models.ErrConflict.Error(),
		})
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": message,
		})
	default:
		log.Printf("%s: %v", message, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
		})
	}
}

// respondValidationErrors shapes validator failures into a 400 with one
// message per offending field.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// sessionUserID reads the authenticated user's ID placed in the request
// context by the auth middleware.
func sessionUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}
