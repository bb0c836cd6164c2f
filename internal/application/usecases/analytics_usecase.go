package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/sitepulse/analytics-api/internal/domain/repositories"
)

type WebsiteMetricsResult struct {
	TotalPageViews         int64   `json:"total_page_views"`
	UniqueVisitors         int64   `json:"unique_visitors"`
	AvgSessionDuration     string  `json:"avg_session_duration"`
	AvgSessionDurationSecs float64 `json:"avg_session_duration_seconds"`
	PagesPerSession        float64 `json:"pages_per_session"`
}

type AnalyticsUseCase struct {
	websiteRepo   repositories.IWebsiteRepository
	analyticsRepo repositories.IAnalyticsRepository
}

func NewAnalyticsUseCase(websiteRepo repositories.IWebsiteRepository, analyticsRepo repositories.IAnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{websiteRepo: websiteRepo, analyticsRepo: analyticsRepo}
}

// GetWebsiteMetrics aggregates the dashboard numbers for one site.
func (uc *AnalyticsUseCase) GetWebsiteMetrics(ctx context.Context, siteID string) (*WebsiteMetricsResult, error) {
	website, err := uc.websiteRepo.FindBySiteID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	metrics, err := uc.analyticsRepo.GetWebsiteMetrics(ctx, website.WebsiteID)
	if err != nil {
		return nil, err
	}

	minutes := int(metrics.AvgDurationSeconds) / 60
	seconds := int(metrics.AvgDurationSeconds) % 60

	return &WebsiteMetricsResult{
		TotalPageViews:         metrics.TotalPageViews,
		UniqueVisitors:         metrics.UniqueVisitors,
		AvgSessionDuration:     fmt.Sprintf("%dm %ds", minutes, seconds),
		AvgSessionDurationSecs: metrics.AvgDurationSeconds,
		PagesPerSession:        math.Round(metrics.PagesPerSession*10) / 10,
	}, nil
}
