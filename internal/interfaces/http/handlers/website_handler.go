package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type WebsiteHandler struct {
	websiteUseCase *usecases.WebsiteUseCase
}

func NewWebsiteHandler(websiteUseCase *usecases.WebsiteUseCase) *WebsiteHandler {
	return &WebsiteHandler{websiteUseCase: websiteUseCase}
}

type websiteCreateRequest struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	SiteID string `json:"site_id"`
}

func (h *WebsiteHandler) CreateWebsite(c *fiber.Ctx) error {
	var req websiteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	website, err := h.websiteUseCase.Create(c.Context(), req.Name, req.URL, req.SiteID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": website})
}

func (h *WebsiteHandler) GetWebsites(c *fiber.Ctx) error {
	websites, err := h.websiteUseCase.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": websites})
}

func (h *WebsiteHandler) GetWebsite(c *fiber.Ctx) error {
	website, err := h.websiteUseCase.GetBySiteID(c.Context(), c.Params("site_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": website})
}
