package repositories

import (
	"context"

	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type WebsiteMetrics struct {
	TotalPageViews     int64
	UniqueVisitors     int64
	AvgDurationSeconds float64
	PagesPerSession    float64
}

type IAnalyticsRepository interface {
	GetWebsiteMetrics(ctx context.Context, websiteID int) (*WebsiteMetrics, error)
}

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) GetWebsiteMetrics(ctx context.Context, websiteID int) (*WebsiteMetrics, error) {
	metrics := &WebsiteMetrics{}

	err := r.db.WithContext(ctx).Model(&entities.PageView{}).
		Joins("JOIN sessions ON page_views.session_id = sessions.session_id").
		Where("sessions.website_id = ?", websiteID).
		Count(&metrics.TotalPageViews).Error
	if err != nil {
		return nil, storeErr(err, "count page views")
	}

	err = r.db.WithContext(ctx).Model(&entities.User{}).
		Where("website_id = ?", websiteID).
		Count(&metrics.UniqueVisitors).Error
	if err != nil {
		return nil, storeErr(err, "count unique visitors")
	}

	var avgDuration *float64
	err = r.db.WithContext(ctx).Model(&entities.Session{}).
		Select("AVG(session_duration)").
		Where("website_id = ? AND session_duration IS NOT NULL", websiteID).
		Scan(&avgDuration).Error
	if err != nil {
		return nil, storeErr(err, "average session duration")
	}
	if avgDuration != nil {
		metrics.AvgDurationSeconds = *avgDuration
	}

	var pagesPerSession *float64
	err = r.db.WithContext(ctx).
		Table("(?) as session_pages", r.db.Model(&entities.PageView{}).
			Select("COUNT(*) as page_count").
			Joins("JOIN sessions ON page_views.session_id = sessions.session_id").
			Where("sessions.website_id = ?", websiteID).
			Group("page_views.session_id")).
		Select("AVG(page_count)").
		Scan(&pagesPerSession).Error
	if err != nil {
		return nil, storeErr(err, "average pages per session")
	}
	if pagesPerSession != nil {
		metrics.PagesPerSession = *pagesPerSession
	}

	return metrics, nil
}
