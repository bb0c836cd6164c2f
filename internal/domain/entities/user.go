package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is one tracked visitor of one website. The same browser visiting two
// websites produces two rows: identity is scoped by (website_id, visitor_uuid).
type User struct {
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;column:user_id"`
	WebsiteID   int       `json:"website_id" gorm:"column:website_id;not null;uniqueIndex:idx_users_website_visitor"`
	VisitorUUID string    `json:"visitor_uuid" gorm:"column:visitor_uuid;not null;uniqueIndex:idx_users_website_visitor"`
	FirstSeen   time.Time `json:"first_seen" gorm:"column:first_seen;not null"`
	LastSeen    time.Time `json:"last_seen" gorm:"column:last_seen;not null"`
	LeadScore   int       `json:"lead_score" gorm:"column:lead_score;default:0;check:chk_users_lead_score,lead_score >= 0 AND lead_score <= 100"`

	Website Website `json:"-" gorm:"foreignKey:WebsiteID;references:WebsiteID"`
}

func (User) TableName() string {
	return "users"
}
