package usecases

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/repositories"
)

// Scoring weights. A session score is the sum of three independently capped
// parts: duration (max 40), page views (max 30), clicks (max 30).
const (
	MaxDurationScore = 40
	MaxPageScore     = 30
	MaxClickScore    = 30

	PointsPerPage           = 5
	PointsPerRegularClick   = 2
	PointsPerImportantClick = 5
)

// ScoringConfig carries the injectable set of high-intent phrases. A click
// whose element text equals one of them (case-insensitive, exact match) is
// weighted as important. Changing the set reclassifies historical clicks on
// the next scoring run, since classification is never stored.
type ScoringConfig struct {
	ImportantClickTexts map[string]struct{}
}

// DefaultScoringConfig matches the call-to-action buttons of the tracked
// marketing sites.
func DefaultScoringConfig() ScoringConfig {
	return NewScoringConfig([]string{"be an early bird", "get a demo"})
}

func NewScoringConfig(importantTexts []string) ScoringConfig {
	set := make(map[string]struct{}, len(importantTexts))
	for _, t := range importantTexts {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return ScoringConfig{ImportantClickTexts: set}
}

// IsImportantClick classifies a click's element text. Exact match only;
// "Get a Demo today" is a regular click.
func (c ScoringConfig) IsImportantClick(elementText string) bool {
	_, ok := c.ImportantClickTexts[strings.ToLower(elementText)]
	return ok
}

// CalculateDurationScore is a step function of the session duration in
// seconds: <1min 5, 1-3min 15, 3-5min 25, 5-10min 35, 10min+ 40.
func CalculateDurationScore(durationSeconds int) int {
	switch {
	case durationSeconds < 60:
		return 5
	case durationSeconds < 180:
		return 15
	case durationSeconds < 300:
		return 25
	case durationSeconds < 600:
		return 35
	default:
		return MaxDurationScore
	}
}

func CalculatePageViewsScore(pageCount int) int {
	score := pageCount * PointsPerPage
	if score > MaxPageScore {
		return MaxPageScore
	}
	return score
}

func CalculateClickScore(regularClicks, importantClicks int) int {
	score := regularClicks*PointsPerRegularClick + importantClicks*PointsPerImportantClick
	if score > MaxClickScore {
		return MaxClickScore
	}
	return score
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreBreakdown is the per-factor result of scoring one session.
type ScoreBreakdown struct {
	SessionID       uuid.UUID  `json:"session_id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	PageViews       int        `json:"page_views"`
	RegularClicks   int        `json:"regular_clicks"`
	ImportantClicks int        `json:"important_clicks"`
	DurationScore   int        `json:"duration_score"`
	PageScore       int        `json:"page_score"`
	ClickScore      int        `json:"click_score"`
	TotalScore      int        `json:"total_score"`
}

type LeadScoringUseCase struct {
	sessionRepo  repositories.ISessionRepository
	pageViewRepo repositories.IPageViewRepository
	clickRepo    repositories.IClickEventRepository
	userRepo     repositories.IUserRepository
	config       ScoringConfig
}

func NewLeadScoringUseCase(
	sessionRepo repositories.ISessionRepository,
	pageViewRepo repositories.IPageViewRepository,
	clickRepo repositories.IClickEventRepository,
	userRepo repositories.IUserRepository,
	config ScoringConfig,
) *LeadScoringUseCase {
	return &LeadScoringUseCase{
		sessionRepo:  sessionRepo,
		pageViewRepo: pageViewRepo,
		clickRepo:    clickRepo,
		userRepo:     userRepo,
		config:       config,
	}
}

// ScoreSession reads the session's aggregated signals and applies the
// formula without persisting anything. Usable standalone for diagnostics.
func (uc *LeadScoringUseCase) ScoreSession(ctx context.Context, sessionID uuid.UUID) (*ScoreBreakdown, error) {
	session, err := uc.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	duration := 0
	if session.DurationSeconds != nil {
		duration = *session.DurationSeconds
	}

	pageViews, err := uc.pageViewRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	texts, err := uc.clickRepo.ListElementTextsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	regular, important := 0, 0
	for _, text := range texts {
		if text != nil && uc.config.IsImportantClick(*text) {
			important++
		} else {
			regular++
		}
	}

	breakdown := &ScoreBreakdown{
		SessionID:       sessionID,
		UserID:          session.UserID,
		DurationSeconds: duration,
		PageViews:       int(pageViews),
		RegularClicks:   regular,
		ImportantClicks: important,
		DurationScore:   CalculateDurationScore(duration),
		PageScore:       CalculatePageViewsScore(int(pageViews)),
		ClickScore:      CalculateClickScore(regular, important),
	}
	breakdown.TotalScore = clampScore(breakdown.DurationScore + breakdown.PageScore + breakdown.ClickScore)

	log.Printf("Session %s lead score breakdown: duration %d/%d, pages %d/%d, clicks %d/%d, total %d/100",
		sessionID, breakdown.DurationScore, MaxDurationScore,
		breakdown.PageScore, MaxPageScore,
		breakdown.ClickScore, MaxClickScore,
		breakdown.TotalScore)

	return breakdown, nil
}

// PersistSessionScore computes and writes the score to the session row.
func (uc *LeadScoringUseCase) PersistSessionScore(ctx context.Context, sessionID uuid.UUID) (int, error) {
	breakdown, err := uc.ScoreSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if err := uc.sessionRepo.UpdateLeadScore(ctx, sessionID, breakdown.TotalScore); err != nil {
		return 0, err
	}
	return breakdown.TotalScore, nil
}

// AverageUserScore returns the integer-rounded mean of the user's scored
// sessions, 0 when none are scored yet.
func (uc *LeadScoringUseCase) AverageUserScore(ctx context.Context, userID uuid.UUID) (int, error) {
	avg, count, err := uc.sessionRepo.AverageLeadScore(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return clampScore(avg), nil
}

// PersistUserScore computes and writes the rolling average to the user row.
func (uc *LeadScoringUseCase) PersistUserScore(ctx context.Context, userID uuid.UUID) (int, error) {
	avg, err := uc.AverageUserScore(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := uc.userRepo.UpdateLeadScore(ctx, userID, avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// Finalize runs the full scoring pass triggered by session end: session
// score always, user average only when the session carries a user. A session
// with no resolved user still finalizes successfully.
func (uc *LeadScoringUseCase) Finalize(ctx context.Context, sessionID uuid.UUID) error {
	session, err := uc.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := uc.PersistSessionScore(ctx, sessionID); err != nil {
		return err
	}

	if session.UserID == nil {
		log.Printf("⚠️ Session %s has no associated user, skipping user score", sessionID)
		return nil
	}

	if _, err := uc.PersistUserScore(ctx, *session.UserID); err != nil {
		return err
	}

	log.Printf("✅ Completed lead scoring for session %s and user %s", sessionID, *session.UserID)
	return nil
}
