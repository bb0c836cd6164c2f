package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type ClickEventHandler struct {
	clickEventUseCase *usecases.ClickEventUseCase
}

func NewClickEventHandler(clickEventUseCase *usecases.ClickEventUseCase) *ClickEventHandler {
	return &ClickEventHandler{clickEventUseCase: clickEventUseCase}
}

type clickEventRequest struct {
	SiteID          string  `json:"siteId"`
	SessionID       string  `json:"sessionId"`
	UserID          string  `json:"userId"`
	URL             string  `json:"url"`
	ElementSelector string  `json:"elementSelector"`
	ElementText     *string `json:"elementText"`
	XCoord          *int    `json:"xCoord"`
	YCoord          *int    `json:"yCoord"`
}

func (h *ClickEventHandler) TrackClickEvent(c *fiber.Ctx) error {
	var req clickEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SiteID == "" || req.SessionID == "" || req.UserID == "" || req.URL == "" || req.ElementSelector == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
	}

	click, err := h.clickEventUseCase.Track(c.Context(), usecases.TrackClickInput{
		SiteID:          req.SiteID,
		SessionID:       sessionID,
		VisitorUUID:     req.UserID,
		URL:             req.URL,
		ElementSelector: req.ElementSelector,
		ElementText:     req.ElementText,
		XCoord:          req.XCoord,
		YCoord:          req.YCoord,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Click event tracked successfully",
		"click_id": click.ClickID,
		"page_id":  click.PageID,
	})
}
