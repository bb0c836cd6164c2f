package repositories

import (
	"context"
	"errors"

	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type IPageRepository interface {
	GetOrCreate(ctx context.Context, websiteID int, url string, title *string) (*entities.Page, error)
}

type PageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) *PageRepository {
	return &PageRepository{db: db}
}

// GetOrCreate returns the page for (website_id, url), creating it on first
// sight. A concurrent creator winning the insert is fine: the unique index
// rejects ours and the row is re-read.
func (r *PageRepository) GetOrCreate(ctx context.Context, websiteID int, url string, title *string) (*entities.Page, error) {
	var page entities.Page
	err := r.db.WithContext(ctx).
		Where("website_id = ? AND url = ?", websiteID, url).
		First(&page).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "find page")
	}

	page = entities.Page{WebsiteID: websiteID, URL: url, Title: title}
	if err := r.db.WithContext(ctx).Create(&page).Error; err != nil {
		if isUniqueViolation(err) {
			var existing entities.Page
			if err := r.db.WithContext(ctx).
				Where("website_id = ? AND url = ?", websiteID, url).
				First(&existing).Error; err != nil {
				return nil, storeErr(err, "re-read page after conflict")
			}
			return &existing, nil
		}
		return nil, storeErr(err, "create page")
	}
	return &page, nil
}
