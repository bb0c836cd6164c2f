package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type IClickEventRepository interface {
	Create(ctx context.Context, click *entities.ClickEvent) error
	ListElementTextsBySession(ctx context.Context, sessionID uuid.UUID) ([]*string, error)
}

type ClickEventRepository struct {
	db *gorm.DB
}

func NewClickEventRepository(db *gorm.DB) *ClickEventRepository {
	return &ClickEventRepository{db: db}
}

func (r *ClickEventRepository) Create(ctx context.Context, click *entities.ClickEvent) error {
	if err := r.db.WithContext(ctx).Create(click).Error; err != nil {
		return storeErr(err, "create click event")
	}
	return nil
}

// ListElementTextsBySession returns one entry per click of the session, NULL
// texts included. Important/regular classification happens at scoring time
// against the configured phrase set, so it is never computed or stored here.
func (r *ClickEventRepository) ListElementTextsBySession(ctx context.Context, sessionID uuid.UUID) ([]*string, error) {
	var texts []*string
	err := r.db.WithContext(ctx).Model(&entities.ClickEvent{}).
		Where("session_id = ?", sessionID).
		Order("click_id").
		Pluck("element_text", &texts).Error
	if err != nil {
		return nil, storeErr(err, "list click texts")
	}
	return texts, nil
}
