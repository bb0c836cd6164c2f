package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sitepulse/analytics-api/internal/domain/apperrors"
	"github.com/sitepulse/analytics-api/internal/domain/entities"

	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	FindByVisitor(ctx context.Context, websiteID int, visitorUUID string) (*entities.User, error)
	TouchLastSeen(ctx context.Context, websiteID int, visitorUUID string) error
	UpdateLeadScore(ctx context.Context, userID uuid.UUID, score int) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a first-seen visitor. The (website_id, visitor_uuid) unique
// index is the only guard against concurrent first-contact requests: the
// losing insert comes back as a Conflict, which callers treat as benign.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.KindConflict, err, "user already exists for visitor %s", user.VisitorUUID)
		}
		return storeErr(err, "create user")
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found: %s", userID)
		}
		return nil, storeErr(err, "find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByVisitor(ctx context.Context, websiteID int, visitorUUID string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("website_id = ? AND visitor_uuid = ?", websiteID, visitorUUID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found for visitor: %s", visitorUUID)
		}
		return nil, storeErr(err, "find user by visitor")
	}
	return &user, nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, websiteID int, visitorUUID string) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("website_id = ? AND visitor_uuid = ?", websiteID, visitorUUID).
		Update("last_seen", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		return storeErr(result.Error, "touch user")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found for visitor: %s", visitorUUID)
	}
	return nil
}

func (r *UserRepository) UpdateLeadScore(ctx context.Context, userID uuid.UUID, score int) error {
	if score < 0 || score > 100 {
		return apperrors.Validation("invalid lead score %d, must be between 0 and 100", score)
	}
	result := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("user_id = ?", userID).
		Update("lead_score", score)
	if result.Error != nil {
		return storeErr(result.Error, "update user lead score")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found: %s", userID)
	}
	return nil
}
