package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type ISessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error)
	FindByIDWithWebsite(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error)
	UpdateDuration(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error
	End(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error
	UpdateLeadScore(ctx context.Context, sessionID uuid.UUID, score int) error
	AverageLeadScore(ctx context.Context, userID uuid.UUID) (int, int64, error)
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session with a client-supplied primary key. A repeated
// session_id is a Conflict, surfaced to the caller rather than ignored.
func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.KindConflict, err, "session already started: %s", session.SessionID)
		}
		return storeErr(err, "create session")
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session not found: %s", sessionID)
		}
		return nil, storeErr(err, "find session")
	}
	return &session, nil
}

func (r *SessionRepository) FindByIDWithWebsite(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	err := r.db.WithContext(ctx).Preload("Website").
		Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session not found: %s", sessionID)
		}
		return nil, storeErr(err, "find session")
	}
	return &session, nil
}

// UpdateDuration overwrites the running duration estimate (heartbeat).
// Last write wins; heartbeats carry no sequence number.
func (r *SessionRepository) UpdateDuration(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error {
	result := r.db.WithContext(ctx).Model(&entities.Session{}).
		Where("session_id = ?", sessionID).
		Update("session_duration", durationSeconds)
	if result.Error != nil {
		return storeErr(result.Error, "update session duration")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("session not found: %s", sessionID)
	}
	return nil
}

func (r *SessionRepository) End(ctx context.Context, sessionID uuid.UUID, durationSeconds int) error {
	result := r.db.WithContext(ctx).Model(&entities.Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"end_time":         time.Now().UTC(),
			"session_duration": durationSeconds,
		})
	if result.Error != nil {
		return storeErr(result.Error, "end session")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("session not found: %s", sessionID)
	}
	return nil
}

func (r *SessionRepository) UpdateLeadScore(ctx context.Context, sessionID uuid.UUID, score int) error {
	if score < 0 || score > 100 {
		return apperrors.Validation("invalid lead score %d, must be between 0 and 100", score)
	}
	result := r.db.WithContext(ctx).Model(&entities.Session{}).
		Where("session_id = ?", sessionID).
		Update("lead_score", score)
	if result.Error != nil {
		return storeErr(result.Error, "update session lead score")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("session not found: %s", sessionID)
	}
	return nil
}

// AverageLeadScore returns the integer-rounded mean lead score across the
// user's scored sessions, plus how many sessions were scored.
func (r *SessionRepository) AverageLeadScore(ctx context.Context, userID uuid.UUID) (int, int64, error) {
	var row struct {
		AvgScore     *float64
		SessionCount int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Session{}).
		Select("AVG(lead_score) as avg_score, COUNT(*) as session_count").
		Where("user_id = ? AND lead_score IS NOT NULL", userID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, storeErr(err, "average user lead score")
	}
	if row.SessionCount == 0 || row.AvgScore == nil {
		return 0, 0, nil
	}
	return int(*row.AvgScore + 0.5), row.SessionCount, nil
}
