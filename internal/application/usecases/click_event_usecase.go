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

type TrackClickInput struct {
	SiteID          string
	SessionID       uuid.UUID
	VisitorUUID     string
	URL             string
	ElementSelector string
	ElementText     *string
	XCoord          *int
	YCoord          *int
}

// ClickEventUseCase appends immutable click events. No state beyond valid
// foreign keys; whether a click is "important" is the scoring engine's
// business.
type ClickEventUseCase struct {
	websiteRepo repositories.IWebsiteRepository
	userRepo    repositories.IUserRepository
	pageRepo    repositories.IPageRepository
	clickRepo   repositories.IClickEventRepository
}

func NewClickEventUseCase(
	websiteRepo repositories.IWebsiteRepository,
	userRepo repositories.IUserRepository,
	pageRepo repositories.IPageRepository,
	clickRepo repositories.IClickEventRepository,
) *ClickEventUseCase {
	return &ClickEventUseCase{
		websiteRepo: websiteRepo,
		userRepo:    userRepo,
		pageRepo:    pageRepo,
		clickRepo:   clickRepo,
	}
}

func (uc *ClickEventUseCase) Track(ctx context.Context, input TrackClickInput) (*entities.ClickEvent, error) {
	website, err := uc.websiteRepo.FindBySiteID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	page, err := uc.pageRepo.GetOrCreate(ctx, website.WebsiteID, input.URL, nil)
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

	click := &entities.ClickEvent{
		SessionID:       input.SessionID,
		UserID:          user.UserID,
		PageID:          page.PageID,
		ElementSelector: input.ElementSelector,
		ElementText:     input.ElementText,
		ClickTime:       time.Now().UTC(),
		XCoord:          input.XCoord,
		YCoord:          input.YCoord,
	}

	if err := uc.clickRepo.Create(ctx, click); err != nil {
		return nil, err
	}

	log.Printf("Created click event: %d for element: %s", click.ClickID, click.ElementSelector)
	return click, nil
}
