package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
)

type UserHandler struct {
	userUseCase *usecases.UserUseCase
}

func NewUserHandler(userUseCase *usecases.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

type userCreateRequest struct {
	SiteID    string `json:"siteId"`
	UserID    string `json:"userId"` // visitor uuid
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	UserAgent string `json:"userAgent"`
}

type userUpdateRequest struct {
	SiteID    string `json:"siteId"`
	UserID    string `json:"userId"`
	Action    string `json:"action"` // "update_last_seen" or "update_lead_score"
	LeadScore *int   `json:"leadScore"`
}

// CreateUser registers a first-time visitor. Hitting an existing identity —
// including losing the concurrent-first-contact race — is answered with the
// winner's row and is_new=false, not an error.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req userCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SiteID == "" || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	user, isNew, err := h.userUseCase.ResolveOrCreate(c.Context(), req.SiteID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	message := "User already exists"
	if isNew {
		message = "User created successfully"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"user_id":      user.UserID,
			"visitor_uuid": user.VisitorUUID,
			"website_id":   user.WebsiteID,
			"first_seen":   user.FirstSeen,
			"last_seen":    user.LastSeen,
			"lead_score":   user.LeadScore,
			"is_new":       isNew,
		},
	})
}

// UpdateUser handles the snippet's last-seen touch and the dashboard's
// direct lead-score write, dispatched on action.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req userUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SiteID == "" || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	switch req.Action {
	case "update_last_seen":
		if err := h.userUseCase.Touch(c.Context(), req.SiteID, req.UserID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "User last_seen updated successfully"})

	case "update_lead_score":
		if req.LeadScore == nil {
			return respondError(c, apperrors.Validation("leadScore is required for update_lead_score action"))
		}
		if err := h.userUseCase.UpdateLeadScore(c.Context(), req.SiteID, req.UserID, *req.LeadScore); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "User lead score updated"})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action. Use 'update_last_seen' or 'update_lead_score'"})
	}
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	siteID := c.Params("site_id")
	visitorUUID := c.Params("visitor_uuid")

	user, err := h.userUseCase.GetByVisitor(c.Context(), siteID, visitorUUID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}
