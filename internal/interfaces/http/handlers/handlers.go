package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
)

// respondError maps the application error taxonomy onto HTTP statuses.
// Referential faults are caller ordering bugs on our side of the API, so
// they are logged loudly and reported as server errors.
func respondError(c *fiber.Ctx, err error) error {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		log.Printf("❌ Unclassified error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	switch kind {
	case apperrors.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case apperrors.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case apperrors.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperrors.KindReferential:
		log.Printf("❌ Referential fault (caller ordering bug): %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	case apperrors.KindUnavailable:
		log.Printf("❌ Store unavailable: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service temporarily unavailable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
