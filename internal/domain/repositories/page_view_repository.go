package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type IPageViewRepository interface {
	RecordView(ctx context.Context, view *entities.PageView) error
	CloseAll(ctx context.Context, sessionID uuid.UUID) (int64, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)
	OpenViewCount(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

type PageViewRepository struct {
	db *gorm.DB
}

func NewPageViewRepository(db *gorm.DB) *PageViewRepository {
	return &PageViewRepository{db: db}
}

// RecordView closes the session's open view (if any) and inserts the new one
// in a single transaction, so the "at most one open view per session"
// invariant holds before and after the call. The close is a no-op for the
// first view of a session.
func (r *PageViewRepository) RecordView(ctx context.Context, view *entities.PageView) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.PageView{}).
			Where("session_id = ? AND view_end IS NULL", view.SessionID).
			Update("view_end", time.Now().UTC()).Error; err != nil {
			return err
		}
		return tx.Create(view).Error
	})
	if err != nil {
		return storeErr(err, "record page view")
	}
	return nil
}

// CloseAll ends any still-open view for a session. Called on session end to
// cover trackers that never sent a final page-view event. Closing twice in a
// row changes nothing the second time.
func (r *PageViewRepository) CloseAll(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.PageView{}).
		Where("session_id = ? AND view_end IS NULL", sessionID).
		Update("view_end", time.Now().UTC())
	if result.Error != nil {
		return 0, storeErr(result.Error, "close page views")
	}
	return result.RowsAffected, nil
}

func (r *PageViewRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.PageView{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, storeErr(err, "count page views")
	}
	return count, nil
}

func (r *PageViewRepository) OpenViewCount(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.PageView{}).
		Where("session_id = ? AND view_end IS NULL", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, storeErr(err, "count open page views")
	}
	return count, nil
}
