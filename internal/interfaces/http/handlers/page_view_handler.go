package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type PageViewHandler struct {
	pageViewUseCase *usecases.PageViewUseCase
}

func NewPageViewHandler(pageViewUseCase *usecases.PageViewUseCase) *PageViewHandler {
	return &PageViewHandler{pageViewUseCase: pageViewUseCase}
}

type pageViewRequest struct {
	SiteID    string  `json:"siteId"`
	SessionID string  `json:"sessionId"`
	UserID    string  `json:"userId"`
	URL       string  `json:"url"`
	Title     *string `json:"title"`
	Referrer  *string `json:"referrer"`
}

func (h *PageViewHandler) TrackPageView(c *fiber.Ctx) error {
	var req pageViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SiteID == "" || req.SessionID == "" || req.UserID == "" || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
	}

	view, err := h.pageViewUseCase.Track(c.Context(), usecases.TrackPageViewInput{
		SiteID:      req.SiteID,
		SessionID:   sessionID,
		VisitorUUID: req.UserID,
		URL:         req.URL,
		Title:       req.Title,
		Referrer:    req.Referrer,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Page view tracked successfully",
		"view_id": view.ViewID,
		"page_id": view.PageID,
	})
}
