package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"github.com/sitepulse/analytics-api/internal/domain/repositories"
	"gorm.io/gorm"
)

type sessionFixture struct {
	gdb      *gorm.DB
	website  *entities.Website
	users    *UserUseCase
	sessions *SessionUseCase
	views    *PageViewUseCase
}

func newSessionFixture(t *testing.T, gdb *gorm.DB) *sessionFixture {
	t.Helper()

	websiteRepo := repositories.NewWebsiteRepository(gdb, nil)
	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)
	pageRepo := repositories.NewPageRepository(gdb)
	pageViewRepo := repositories.NewPageViewRepository(gdb)
	clickRepo := repositories.NewClickEventRepository(gdb)

	scoring := NewLeadScoringUseCase(sessionRepo, pageViewRepo, clickRepo, userRepo, DefaultScoringConfig())

	return &sessionFixture{
		gdb:      gdb,
		website:  seedWebsite(t, gdb, "sessions1"),
		users:    NewUserUseCase(websiteRepo, userRepo),
		sessions: NewSessionUseCase(websiteRepo, userRepo, sessionRepo, pageViewRepo, scoring),
		views:    NewPageViewUseCase(websiteRepo, userRepo, pageRepo, pageViewRepo),
	}
}

func TestStartSessionUnknownWebsite(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)

	_, err := f.sessions.Start(context.Background(), StartSessionInput{
		SiteID:    "nope",
		SessionID: uuid.New(),
	})
	require.True(t, apperrors.IsNotFound(err))
}

func TestStartSessionResolvesKnownVisitor(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)
	ctx := context.Background()

	visitor := uuid.New().String()
	user, isNew, err := f.users.ResolveOrCreate(ctx, f.website.SiteID, visitor)
	require.NoError(t, err)
	require.True(t, isNew)

	session, err := f.sessions.Start(ctx, StartSessionInput{
		SiteID:      f.website.SiteID,
		SessionID:   uuid.New(),
		Browser:     "Firefox",
		OS:          "Linux",
		VisitorUUID: visitor,
	})
	require.NoError(t, err)
	require.NotNil(t, session.UserID)
	require.Equal(t, user.UserID, *session.UserID)
}

func TestStartSessionToleratesUnknownVisitor(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)

	session, err := f.sessions.Start(context.Background(), StartSessionInput{
		SiteID:      f.website.SiteID,
		SessionID:   uuid.New(),
		VisitorUUID: uuid.New().String(), // never registered
	})
	require.NoError(t, err)
	require.Nil(t, session.UserID)
}

func TestStartSessionDuplicateIsConflict(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)
	ctx := context.Background()

	sessionID := uuid.New()
	input := StartSessionInput{SiteID: f.website.SiteID, SessionID: sessionID}

	_, err := f.sessions.Start(ctx, input)
	require.NoError(t, err)

	_, err = f.sessions.Start(ctx, input)
	require.True(t, apperrors.IsConflict(err))
}

func TestUpdateDurationUnknownSession(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)

	err := f.sessions.UpdateDuration(context.Background(), uuid.New(), 120)
	require.True(t, apperrors.IsNotFound(err))
}

func TestUpdateDurationOverwrites(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)
	ctx := context.Background()

	sessionID := uuid.New()
	_, err := f.sessions.Start(ctx, StartSessionInput{SiteID: f.website.SiteID, SessionID: sessionID})
	require.NoError(t, err)

	require.NoError(t, f.sessions.UpdateDuration(ctx, sessionID, 30))
	require.NoError(t, f.sessions.UpdateDuration(ctx, sessionID, 90))

	var session entities.Session
	require.NoError(t, gdb.First(&session, "session_id = ?", sessionID).Error)
	require.NotNil(t, session.DurationSeconds)
	require.Equal(t, 90, *session.DurationSeconds)
	require.Nil(t, session.EndTime)
}

func TestEndUnknownSessionWritesNothing(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)

	err := f.sessions.End(context.Background(), uuid.New(), 100)
	require.True(t, apperrors.IsNotFound(err))
}

func TestEndSessionClosesViewsAndScores(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)
	ctx := context.Background()

	visitor := uuid.New().String()
	user, _, err := f.users.ResolveOrCreate(ctx, f.website.SiteID, visitor)
	require.NoError(t, err)

	sessionID := uuid.New()
	_, err = f.sessions.Start(ctx, StartSessionInput{
		SiteID:      f.website.SiteID,
		SessionID:   sessionID,
		VisitorUUID: visitor,
	})
	require.NoError(t, err)

	for _, url := range []string{"/", "/pricing", "/docs", "/signup"} {
		_, err := f.views.Track(ctx, TrackPageViewInput{
			SiteID:      f.website.SiteID,
			SessionID:   sessionID,
			VisitorUUID: visitor,
			URL:         "https://example.com" + url,
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.sessions.End(ctx, sessionID, 480))

	var open int64
	require.NoError(t, gdb.Model(&entities.PageView{}).
		Where("session_id = ? AND view_end IS NULL", sessionID).
		Count(&open).Error)
	require.Zero(t, open)

	var session entities.Session
	require.NoError(t, gdb.First(&session, "session_id = ?", sessionID).Error)
	require.NotNil(t, session.EndTime)
	require.NotNil(t, session.DurationSeconds)
	require.Equal(t, 480, *session.DurationSeconds)
	// 35 duration + 20 pages, no clicks
	require.NotNil(t, session.LeadScore)
	require.Equal(t, 55, *session.LeadScore)

	var updated entities.User
	require.NoError(t, gdb.First(&updated, "user_id = ?", user.UserID).Error)
	require.Equal(t, 55, updated.LeadScore)
}

func TestEndSessionTwiceIsHarmless(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newSessionFixture(t, gdb)
	ctx := context.Background()

	sessionID := uuid.New()
	_, err := f.sessions.Start(ctx, StartSessionInput{SiteID: f.website.SiteID, SessionID: sessionID})
	require.NoError(t, err)

	require.NoError(t, f.sessions.End(ctx, sessionID, 100))

	var first entities.Session
	require.NoError(t, gdb.First(&first, "session_id = ?", sessionID).Error)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, f.sessions.End(ctx, sessionID, 100))

	var second entities.Session
	require.NoError(t, gdb.First(&second, "session_id = ?", sessionID).Error)
	require.Equal(t, *first.LeadScore, *second.LeadScore)
	require.Equal(t, *first.DurationSeconds, *second.DurationSeconds)
}
