package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/application/usecases"
)

type LeadScoringHandler struct {
	scoringUseCase *usecases.LeadScoringUseCase
}

func NewLeadScoringHandler(scoringUseCase *usecases.LeadScoringUseCase) *LeadScoringHandler {
	return &LeadScoringHandler{scoringUseCase: scoringUseCase}
}

type sessionScoreRequest struct {
	SessionID string `json:"sessionId"`
}

type userScoreRequest struct {
	UserID string `json:"userId"`
}

// CalculateSessionScore computes a session's score without persisting it.
func (h *LeadScoringHandler) CalculateSessionScore(c *fiber.Ctx) error {
	var req sessionScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
	}

	breakdown, err := h.scoringUseCase.ScoreSession(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"session_id": sessionID,
		"lead_score": breakdown.TotalScore,
		"message":    fmt.Sprintf("Session lead score calculated: %d/100", breakdown.TotalScore),
	})
}

func (h *LeadScoringHandler) UpdateSessionScore(c *fiber.Ctx) error {
	var req sessionScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
	}

	score, err := h.scoringUseCase.PersistSessionScore(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"session_id": sessionID,
		"lead_score": score,
		"message":    "Session lead score updated successfully",
	})
}

func (h *LeadScoringHandler) CalculateUserScore(c *fiber.Ctx) error {
	var req userScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId"})
	}

	score, err := h.scoringUseCase.AverageUserScore(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"user_id":            userID,
		"average_lead_score": score,
		"message":            fmt.Sprintf("User average lead score calculated: %d/100", score),
	})
}

func (h *LeadScoringHandler) UpdateUserScore(c *fiber.Ctx) error {
	var req userScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId"})
	}

	score, err := h.scoringUseCase.PersistUserScore(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"user_id":            userID,
		"average_lead_score": score,
		"message":            "User lead score updated successfully",
	})
}

// GetSessionScoreBreakdown exposes the per-factor breakdown for debugging.
func (h *LeadScoringHandler) GetSessionScoreBreakdown(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session_id"})
	}

	breakdown, err := h.scoringUseCase.ScoreSession(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"session_id": sessionID,
		"analytics": fiber.Map{
			"duration_seconds": breakdown.DurationSeconds,
			"page_views_count": breakdown.PageViews,
			"regular_clicks":   breakdown.RegularClicks,
			"important_clicks": breakdown.ImportantClicks,
		},
		"score_breakdown": fiber.Map{
			"duration_score": fmt.Sprintf("%d/%d", breakdown.DurationScore, usecases.MaxDurationScore),
			"page_score":     fmt.Sprintf("%d/%d", breakdown.PageScore, usecases.MaxPageScore),
			"click_score":    fmt.Sprintf("%d/%d", breakdown.ClickScore, usecases.MaxClickScore),
			"total_score":    fmt.Sprintf("%d/100", breakdown.TotalScore),
		},
	})
}
