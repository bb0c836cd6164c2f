package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type AnalyticsHandler struct {
	analyticsUseCase *usecases.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUseCase *usecases.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUseCase: analyticsUseCase}
}

func (h *AnalyticsHandler) GetWebsiteMetrics(c *fiber.Ctx) error {
	metrics, err := h.analyticsUseCase.GetWebsiteMetrics(c.Context(), c.Params("site_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": metrics})
}
