package usecases

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"github.com/sitepulse/analytics-api/internal/domain/repositories"
)

type StartSessionInput struct {
	SiteID      string
	SessionID   uuid.UUID
	Browser     string
	OS          string
	UserAgent   string
	VisitorUUID string // optional; empty when the snippet had no token yet
	IPAddress   string
}

// SessionUseCase owns the session lifecycle: start, heartbeat updates, and
// the end transition that closes open page views and triggers scoring.
type SessionUseCase struct {
	websiteRepo  repositories.IWebsiteRepository
	userRepo     repositories.IUserRepository
	sessionRepo  repositories.ISessionRepository
	pageViewRepo repositories.IPageViewRepository
	scoring      *LeadScoringUseCase
}

func NewSessionUseCase(
	websiteRepo repositories.IWebsiteRepository,
	userRepo repositories.IUserRepository,
	sessionRepo repositories.ISessionRepository,
	pageViewRepo repositories.IPageViewRepository,
	scoring *LeadScoringUseCase,
) *SessionUseCase {
	return &SessionUseCase{
		websiteRepo:  websiteRepo,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		pageViewRepo: pageViewRepo,
		scoring:      scoring,
	}
}

// Start creates a session for a known website. The visitor token is resolved
// best-effort: a miss leaves user_id NULL instead of failing, since the
// identity may not be persisted yet when the very first events arrive.
// Reusing a session_id is a Conflict, not silently ignored.
func (uc *SessionUseCase) Start(ctx context.Context, input StartSessionInput) (*entities.Session, error) {
	log.Printf("🔄 Starting session: site_id=%s, session_id=%s", input.SiteID, input.SessionID)

	website, err := uc.websiteRepo.FindBySiteID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	var userID *uuid.UUID
	if input.VisitorUUID != "" {
		user, err := uc.userRepo.FindByVisitor(ctx, website.WebsiteID, input.VisitorUUID)
		switch {
		case err == nil:
			userID = &user.UserID
		case apperrors.IsNotFound(err):
			log.Printf("⚠️ No user yet for visitor %s, creating session without user link", input.VisitorUUID)
		default:
			return nil, err
		}
	}

	session := &entities.Session{
		SessionID: input.SessionID,
		WebsiteID: website.WebsiteID,
		UserID:    userID,
		Browser:   input.Browser,
		OS:        input.OS,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		StartTime: time.Now().UTC(),
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ Session created: %s", session.SessionID)
	return session, nil
}

// UpdateDuration handles the periodic heartbeat, overwriting the running
// duration estimate without ending the session. Concurrent heartbeats (or a
// heartbeat racing an end) are resolved by commit order: last write wins.
// There is no sequence number; that looseness is inherited by design.
func (uc *SessionUseCase) UpdateDuration(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error {
	return uc.sessionRepo.UpdateDuration(ctx, sessionID, durationSeconds)
}

// End is the terminal transition: set end_time and duration, close any
// still-open page view, then compute and persist the lead scores. An unknown
// session gets NotFound with no writes. End is not idempotent — a second
// call re-closes nothing and re-persists the same score, which is harmless.
// A scoring failure is logged but does not fail the end, because the
// tracker cannot act on it.
func (uc *SessionUseCase) End(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error {
	log.Printf("🔄 Ending session: session_id=%s, duration=%ds", sessionID, durationSeconds)

	if _, err := uc.sessionRepo.FindByID(ctx, sessionID); err != nil {
		return err
	}

	if _, err := uc.pageViewRepo.CloseAll(ctx, sessionID); err != nil {
		return err
	}

	if err := uc.sessionRepo.End(ctx, sessionID, durationSeconds); err != nil {
		return err
	}

	if err := uc.scoring.Finalize(ctx, sessionID); err != nil {
		log.Printf("⚠️ Lead scoring failed for session %s: %v", sessionID, err)
	}

	return nil
}

func (uc *SessionUseCase) Get(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error) {
	return uc.sessionRepo.FindByIDWithWebsite(ctx, sessionID)
}
