package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/validation"
)

func validationFail(c *fiber.Ctx, errs validation.FieldErrors, n utils.Notification) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success":      false,
		"message":      "Validation error",
		"errors":       errs,
		"notification": n,
	})
}

func fail(c *fiber.Ctx, status int, message string, n utils.Notification) error {
	return c.Status(status).JSON(fiber.Map{
		"success":      false,
		"message":      message,
		"notification": n,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "invalid body",
	})
}
