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

type TrackPageViewInput struct {
	SiteID      string
	SessionID   uuid.UUID
	VisitorUUID string
	URL         string
	Title       *string
	Referrer    *string
}

// PageViewUseCase sequences page views: each recorded view closes the
// session's previous open view, keeping at most one open per session.
type PageViewUseCase struct {
	websiteRepo  repositories.IWebsiteRepository
	userRepo     repositories.IUserRepository
	pageRepo     repositories.IPageRepository
	pageViewRepo repositories.IPageViewRepository
}

func NewPageViewUseCase(
	websiteRepo repositories.IWebsiteRepository,
	userRepo repositories.IUserRepository,
	pageRepo repositories.IPageRepository,
	pageViewRepo repositories.IPageViewRepository,
) *PageViewUseCase {
	return &PageViewUseCase{
		websiteRepo:  websiteRepo,
		userRepo:     userRepo,
		pageRepo:     pageRepo,
		pageViewRepo: pageViewRepo,
	}
}

// Track records a page view. The page row is created lazily on first sight
// of the URL. The visitor must already be resolved — the tracking snippet
// registers the user before its first page view, so a missing identity here
// is a caller ordering bug, reported as a referential fault rather than
// NotFound.
func (uc *PageViewUseCase) Track(ctx context.Context, input TrackPageViewInput) (*entities.PageView, error) {
	website, err := uc.websiteRepo.FindBySiteID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	page, err := uc.pageRepo.GetOrCreate(ctx, website.WebsiteID, input.URL, input.Title)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByVisitor(ctx, website.WebsiteID, input.VisitorUUID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Referential("no user for visitor %s on site %s", input.VisitorUUID, input.SiteID)
		}
		return nil, err
	}

	view := &entities.PageView{
		SessionID: input.SessionID,
		UserID:    user.UserID,
		PageID:    page.PageID,
		ViewStart: time.Now().UTC(),
		Referrer:  input.Referrer,
	}

	if err := uc.pageViewRepo.RecordView(ctx, view); err != nil {
		return nil, err
	}

	log.Printf("Created page view: %d for page: %d, user: %s", view.ViewID, page.PageID, user.UserID)
	return view, nil
}
