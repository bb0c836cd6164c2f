package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"github.com/sitepulse/analytics-api/internal/infrastructure/cache"

	"gorm.io/gorm"
)

type IWebsiteRepository interface {
	Create(ctx context.Context, website *entities.Website) error
	FindBySiteID(ctx context.Context, siteID string) (*entities.Website, error)
	FindAll(ctx context.Context) ([]entities.Website, error)
}

// websiteCacheTTL bounds how long a site-key lookup may be served from
// memory. Website rows are created once and never mutated by this service,
// so a short TTL only matters for freshly provisioned sites.
const websiteCacheTTL = 5 * time.Minute

type WebsiteRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewWebsiteRepository(db *gorm.DB, c *cache.Cache) *WebsiteRepository {
	return &WebsiteRepository{db: db, cache: c}
}

func (r *WebsiteRepository) Create(ctx context.Context, website *entities.Website) error {
	if err := r.db.WithContext(ctx).Create(website).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.KindConflict, err, "website with site_id %q or url %q already exists", website.SiteID, website.URL)
		}
		return storeErr(err, "create website")
	}
	return nil
}

func (r *WebsiteRepository) FindBySiteID(ctx context.Context, siteID string) (*entities.Website, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get("website:" + siteID); ok {
			website := cached.(entities.Website)
			return &website, nil
		}
	}

	var website entities.Website
	err := r.db.WithContext(ctx).Where("site_id = ?", siteID).First(&website).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("website not found for site_id: %s", siteID)
		}
		return nil, storeErr(err, "find website")
	}

	if r.cache != nil {
		r.cache.Set("website:"+siteID, website, websiteCacheTTL)
	}
	return &website, nil
}

func (r *WebsiteRepository) FindAll(ctx context.Context) ([]entities.Website, error) {
	var websites []entities.Website
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&websites).Error
	if err != nil {
		return nil, storeErr(err, "list websites")
	}
	return websites, nil
}
