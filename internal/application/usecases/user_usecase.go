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

// UserUseCase resolves (site key, visitor token) pairs to user identities.
type UserUseCase struct {
	websiteRepo repositories.IWebsiteRepository
	userRepo    repositories.IUserRepository
}

func NewUserUseCase(websiteRepo repositories.IWebsiteRepository, userRepo repositories.IUserRepository) *UserUseCase {
	return &UserUseCase{websiteRepo: websiteRepo, userRepo: userRepo}
}

// ResolveOrCreate looks up the visitor for the website and inserts a fresh
// identity on first sight, with a zero lead score. Two concurrent
// first-contact requests may both try the insert; the unique index lets
// exactly one win and the loser re-reads the winner's row. The race is
// expected and logged, never failed.
func (uc *UserUseCase) ResolveOrCreate(ctx context.Context, siteID, visitorUUID string) (*entities.User, bool, error) {
	website, err := uc.websiteRepo.FindBySiteID(ctx, siteID)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.userRepo.FindByVisitor(ctx, website.WebsiteID, visitorUUID)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		UserID:      uuid.New(),
		WebsiteID:   website.WebsiteID,
		VisitorUUID: visitorUUID,
		FirstSeen:   now,
		LastSeen:    now,
		LeadScore:   0,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if apperrors.IsConflict(err) {
			log.Printf("⚠️ User already exists (race condition): %s", visitorUUID)
			winner, findErr := uc.userRepo.FindByVisitor(ctx, website.WebsiteID, visitorUUID)
			if findErr != nil {
				return nil, false, findErr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	log.Printf("✅ New user created: %s for site: %s", visitorUUID, siteID)
	return user, true, nil
}

// Touch updates last_seen for a returning visitor. Creation of missing
// identities is ResolveOrCreate's job, not Touch's.
func (uc *UserUseCase) Touch(ctx context.Context, siteID, visitorUUID string) error {
	website, err := uc.websiteRepo.FindBySiteID(ctx, siteID)
	if err != nil {
		return err
	}
	return uc.userRepo.TouchLastSeen(ctx, website.WebsiteID, visitorUUID)
}

func (uc *UserUseCase) GetByVisitor(ctx context.Context, siteID, visitorUUID string) (*entities.User, error) {
	website, err := uc.websiteRepo.FindBySiteID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.FindByVisitor(ctx, website.WebsiteID, visitorUUID)
}

// UpdateLeadScore sets the user's lead score directly. Scores outside
// [0,100] are rejected before touching the store.
func (uc *UserUseCase) UpdateLeadScore(ctx context.Context, siteID, visitorUUID string, score int) error {
	if score < 0 || score > 100 {
		return apperrors.Validation("invalid lead score %d, must be between 0 and 100", score)
	}
	user, err := uc.GetByVisitor(ctx, siteID, visitorUUID)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdateLeadScore(ctx, user.UserID, score)
}
