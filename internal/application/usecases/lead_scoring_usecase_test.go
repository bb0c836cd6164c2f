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

func TestCalculateDurationScoreBoundaries(t *testing.T) {
	cases := []struct {
		seconds int
		want    int
	}{
		{0, 5},
		{59, 5},
		{60, 15},
		{179, 15},
		{180, 25},
		{299, 25},
		{300, 35},
		{599, 35},
		{600, 40},
		{7200, 40},
	}

	for _, tc := range cases {
		if got := CalculateDurationScore(tc.seconds); got != tc.want {
			t.Errorf("CalculateDurationScore(%d) = %d, want %d", tc.seconds, got, tc.want)
		}
	}
}

func TestCalculateDurationScoreMonotonic(t *testing.T) {
	prev := 0
	for d := 0; d <= 700; d++ {
		got := CalculateDurationScore(d)
		if got < prev {
			t.Fatalf("score decreased at d=%d: %d -> %d", d, prev, got)
		}
		prev = got
	}
}

func TestCalculatePageViewsScore(t *testing.T) {
	cases := []struct {
		pages int
		want  int
	}{
		{0, 0},
		{1, 5},
		{4, 20},
		{6, 30},
		{7, 30},
		{100, 30},
	}

	for _, tc := range cases {
		if got := CalculatePageViewsScore(tc.pages); got != tc.want {
			t.Errorf("CalculatePageViewsScore(%d) = %d, want %d", tc.pages, got, tc.want)
		}
	}
}

func TestCalculateClickScore(t *testing.T) {
	cases := []struct {
		regular   int
		important int
		want      int
	}{
		{0, 0, 0},
		{1, 0, 2},
		{3, 1, 11},
		{5, 2, 20},
		{15, 0, 30},
		{0, 6, 30},
		{20, 20, 30},
	}

	for _, tc := range cases {
		if got := CalculateClickScore(tc.regular, tc.important); got != tc.want {
			t.Errorf("CalculateClickScore(%d, %d) = %d, want %d", tc.regular, tc.important, got, tc.want)
		}
	}
}

func TestScoringConfigExactMatch(t *testing.T) {
	config := DefaultScoringConfig()

	require.True(t, config.IsImportantClick("Get a Demo"))
	require.True(t, config.IsImportantClick("BE AN EARLY BIRD"))
	require.False(t, config.IsImportantClick("Get a Demo today"))
	require.False(t, config.IsImportantClick("demo"))
	require.False(t, config.IsImportantClick(""))
}

func TestScoringConfigInjectableSet(t *testing.T) {
	config := NewScoringConfig([]string{"Start Free Trial", " contact sales "})

	require.True(t, config.IsImportantClick("start free trial"))
	require.True(t, config.IsImportantClick("Contact Sales"))
	require.False(t, config.IsImportantClick("get a demo"))
}

type scoringFixture struct {
	gdb     *gorm.DB
	scoring *LeadScoringUseCase
	website *entities.Website
}

func newScoringFixture(t *testing.T, gdb *gorm.DB) *scoringFixture {
	t.Helper()

	sessionRepo := repositories.NewSessionRepository(gdb)
	pageViewRepo := repositories.NewPageViewRepository(gdb)
	clickRepo := repositories.NewClickEventRepository(gdb)
	userRepo := repositories.NewUserRepository(gdb)

	return &scoringFixture{
		gdb:     gdb,
		scoring: NewLeadScoringUseCase(sessionRepo, pageViewRepo, clickRepo, userRepo, DefaultScoringConfig()),
		website: seedWebsite(t, gdb, "scoring01"),
	}
}

// seedSession creates a session with the given signals: a duration, n page
// views, and clicks with the given element texts (nil = no text).
func (f *scoringFixture) seedSession(t *testing.T, userID *uuid.UUID, durationSeconds, pageViews int, clickTexts []*string) uuid.UUID {
	t.Helper()

	sessionID := uuid.New()
	session := &entities.Session{
		SessionID:       sessionID,
		WebsiteID:       f.website.WebsiteID,
		UserID:          userID,
		StartTime:       time.Now().UTC(),
		DurationSeconds: &durationSeconds,
	}
	if err := f.gdb.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	owner := uuid.New()
	if userID != nil {
		owner = *userID
	} else {
		anon := &entities.User{
			UserID:      owner,
			WebsiteID:   f.website.WebsiteID,
			VisitorUUID: uuid.New().String(),
			FirstSeen:   time.Now().UTC(),
			LastSeen:    time.Now().UTC(),
		}
		if err := f.gdb.Create(anon).Error; err != nil {
			t.Fatalf("failed to seed view owner: %v", err)
		}
	}

	page := &entities.Page{WebsiteID: f.website.WebsiteID, URL: "https://example.com/" + sessionID.String()}
	if err := f.gdb.Create(page).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	for i := 0; i < pageViews; i++ {
		view := &entities.PageView{
			SessionID: sessionID,
			UserID:    owner,
			PageID:    page.PageID,
			ViewStart: time.Now().UTC(),
		}
		if err := f.gdb.Create(view).Error; err != nil {
			t.Fatalf("failed to seed page view: %v", err)
		}
	}

	for _, text := range clickTexts {
		click := &entities.ClickEvent{
			SessionID:       sessionID,
			UserID:          owner,
			PageID:          page.PageID,
			ElementSelector: "button.cta",
			ElementText:     text,
			ClickTime:       time.Now().UTC(),
		}
		if err := f.gdb.Create(click).Error; err != nil {
			t.Fatalf("failed to seed click: %v", err)
		}
	}

	return sessionID
}

func strPtr(s string) *string { return &s }

func TestScoreSessionScenarios(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)
	ctx := context.Background()

	cases := []struct {
		name       string
		duration   int
		pageViews  int
		clickTexts []*string
		want       int
	}{
		{
			name:      "engaged mid-length session",
			duration:  480,
			pageViews: 4,
			clickTexts: []*string{
				strPtr("read more"), strPtr("pricing"), nil, strPtr("Get a Demo"),
			},
			want: 66, // 35 + 20 + 11
		},
		{
			name:      "long high-intent session",
			duration:  720,
			pageViews: 6,
			clickTexts: []*string{
				strPtr("features"), nil, nil, strPtr("blog"), strPtr("about"),
				strPtr("get a demo"), strPtr("Be An Early Bird"),
			},
			want: 90, // 40 + 30 + 20
		},
		{
			name:       "bounce",
			duration:   45,
			pageViews:  1,
			clickTexts: []*string{strPtr("read more")},
			want:       12, // 5 + 5 + 2
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessionID := f.seedSession(t, nil, tc.duration, tc.pageViews, tc.clickTexts)

			breakdown, err := f.scoring.ScoreSession(ctx, sessionID)
			require.NoError(t, err)
			require.Equal(t, tc.want, breakdown.TotalScore)
		})
	}
}

func TestScoreSessionNotFound(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)

	_, err := f.scoring.ScoreSession(context.Background(), uuid.New())
	require.True(t, apperrors.IsNotFound(err))
}

func TestPersistSessionScoreWritesRow(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)
	ctx := context.Background()

	sessionID := f.seedSession(t, nil, 480, 4, []*string{strPtr("a"), strPtr("b"), strPtr("c"), strPtr("get a demo")})

	score, err := f.scoring.PersistSessionScore(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, 66, score)

	var session entities.Session
	require.NoError(t, gdb.First(&session, "session_id = ?", sessionID).Error)
	require.NotNil(t, session.LeadScore)
	require.Equal(t, 66, *session.LeadScore)
}

func TestAverageUserScore(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)
	ctx := context.Background()

	user := &entities.User{
		UserID:      uuid.New(),
		WebsiteID:   f.website.WebsiteID,
		VisitorUUID: uuid.New().String(),
		FirstSeen:   time.Now().UTC(),
		LastSeen:    time.Now().UTC(),
	}
	require.NoError(t, gdb.Create(user).Error)

	for _, score := range []int{66, 90, 12} {
		s := score
		d := 60
		session := &entities.Session{
			SessionID:       uuid.New(),
			WebsiteID:       f.website.WebsiteID,
			UserID:          &user.UserID,
			StartTime:       time.Now().UTC(),
			DurationSeconds: &d,
			LeadScore:       &s,
		}
		require.NoError(t, gdb.Create(session).Error)
	}

	// An unscored session must not drag the average down.
	d := 30
	unscored := &entities.Session{
		SessionID:       uuid.New(),
		WebsiteID:       f.website.WebsiteID,
		UserID:          &user.UserID,
		StartTime:       time.Now().UTC(),
		DurationSeconds: &d,
	}
	require.NoError(t, gdb.Create(unscored).Error)

	avg, err := f.scoring.AverageUserScore(ctx, user.UserID)
	require.NoError(t, err)
	require.Equal(t, 56, avg)
}

func TestAverageUserScoreNoSessions(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)

	avg, err := f.scoring.AverageUserScore(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, 0, avg)
}

func TestFinalizeWithUser(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)
	ctx := context.Background()

	user := &entities.User{
		UserID:      uuid.New(),
		WebsiteID:   f.website.WebsiteID,
		VisitorUUID: uuid.New().String(),
		FirstSeen:   time.Now().UTC(),
		LastSeen:    time.Now().UTC(),
	}
	require.NoError(t, gdb.Create(user).Error)

	sessionID := f.seedSession(t, &user.UserID, 45, 1, []*string{strPtr("read more")})

	require.NoError(t, f.scoring.Finalize(ctx, sessionID))

	var session entities.Session
	require.NoError(t, gdb.First(&session, "session_id = ?", sessionID).Error)
	require.NotNil(t, session.LeadScore)
	require.Equal(t, 12, *session.LeadScore)

	var updated entities.User
	require.NoError(t, gdb.First(&updated, "user_id = ?", user.UserID).Error)
	require.Equal(t, 12, updated.LeadScore)
}

func TestFinalizeWithoutUserSkipsUserScore(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()
	f := newScoringFixture(t, gdb)

	sessionID := f.seedSession(t, nil, 45, 1, nil)

	require.NoError(t, f.scoring.Finalize(context.Background(), sessionID))

	var session entities.Session
	require.NoError(t, gdb.First(&session, "session_id = ?", sessionID).Error)
	require.NotNil(t, session.LeadScore)
	require.Equal(t, 10, *session.LeadScore) // 5 duration + 5 pages
}
