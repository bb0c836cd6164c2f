package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type SessionHandler struct {
	sessionUseCase *usecases.SessionUseCase
}

func NewSessionHandler(sessionUseCase *usecases.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

type sessionEventRequest struct {
	SiteID          string `json:"siteId"`
	SessionID       string `json:"sessionId"`
	Action          string `json:"action"`
	Browser         string `json:"browser"`
	OS              string `json:"os"`
	UserAgent       string `json:"userAgent"`
	UserID          string `json:"userId"` // visitor uuid from the snippet
	SessionDuration int    `json:"sessionDuration"`
}

// HandleSessionEvent dispatches start/end/update session events. The body is
// decoded from the raw bytes rather than relying on the Content-Type header,
// because navigator.sendBeacon posts JSON as text/plain.
func (h *SessionHandler) HandleSessionEvent(c *fiber.Ctx) error {
	var req sessionEventRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SiteID == "" || req.SessionID == "" || req.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
	}

	switch req.Action {
	case "start":
		session, err := h.sessionUseCase.Start(c.Context(), usecases.StartSessionInput{
			SiteID:      req.SiteID,
			SessionID:   sessionID,
			Browser:     req.Browser,
			OS:          req.OS,
			UserAgent:   req.UserAgent,
			VisitorUUID: req.UserID,
			IPAddress:   c.IP(),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "message": "Session started", "session": session})

	case "end":
		if err := h.sessionUseCase.End(c.Context(), sessionID, req.SessionDuration); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "message": "Session ended"})

	case "update":
		if err := h.sessionUseCase.UpdateDuration(c.Context(), sessionID, req.SessionDuration); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "message": "Session updated"})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
	}
}

// GetSession returns one session joined with its website, for the dashboard.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session_id"})
	}

	session, err := h.sessionUseCase.Get(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"session":      session,
			"site_id":      session.Website.SiteID,
			"website_name": session.Website.Name,
		},
	})
}
