package usecases

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"github.com/sitepulse/analytics-api/internal/domain/repositories"
)

// WebsiteUseCase provisions tracked websites. The rest of the system treats
// website rows as read-only reference data.
type WebsiteUseCase struct {
	websiteRepo repositories.IWebsiteRepository
}

func NewWebsiteUseCase(websiteRepo repositories.IWebsiteRepository) *WebsiteUseCase {
	return &WebsiteUseCase{websiteRepo: websiteRepo}
}

// Create registers a website, generating an 8-character site key when the
// caller did not supply one.
func (uc *WebsiteUseCase) Create(ctx context.Context, name, url, siteID string) (*entities.Website, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return nil, apperrors.Validation("name and url are required")
	}

	if siteID == "" {
		siteID = uuid.New().String()[:8]
	}

	website := &entities.Website{
		SiteID: siteID,
		Name:   name,
		URL:    url,
	}

	if err := uc.websiteRepo.Create(ctx, website); err != nil {
		return nil, err
	}

	log.Printf("✅ Website registered: %s (site_id=%s)", name, siteID)
	return website, nil
}

func (uc *WebsiteUseCase) List(ctx context.Context) ([]entities.Website, error) {
	return uc.websiteRepo.FindAll(ctx)
}

func (uc *WebsiteUseCase) GetBySiteID(ctx context.Context, siteID string) (*entities.Website, error) {
	return uc.websiteRepo.FindBySiteID(ctx, siteID)
}
