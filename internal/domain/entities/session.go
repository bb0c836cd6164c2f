package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session IDs are supplied by the tracking snippet, not generated here.
// UserID stays NULL when the visitor identity was not yet persisted at
// session start.
type Session struct {
	SessionID       uuid.UUID  `json:"session_id" gorm:"type:uuid;primaryKey;column:session_id"`
	WebsiteID       int        `json:"website_id" gorm:"column:website_id;not null;index:idx_sessions_website_id"`
	UserID          *uuid.UUID `json:"user_id" gorm:"type:uuid;column:user_id;index:idx_sessions_user_id"`
	Browser         string     `json:"browser" gorm:"column:browser"`
	OS              string     `json:"os" gorm:"column:os"`
	UserAgent       string     `json:"user_agent" gorm:"column:user_agent;type:text"`
	IPAddress       string     `json:"ip_address" gorm:"column:ip_address"`
	StartTime       time.Time  `json:"start_time" gorm:"column:start_time;not null"`
	EndTime         *time.Time `json:"end_time" gorm:"column:end_time"`
	DurationSeconds *int       `json:"duration_seconds" gorm:"column:session_duration"`
	LeadScore       *int       `json:"lead_score" gorm:"column:lead_score;check:chk_sessions_lead_score,lead_score >= 0 AND lead_score <= 100"`

	Website Website `json:"-" gorm:"foreignKey:WebsiteID;references:WebsiteID"`
	User    *User   `json:"-" gorm:"foreignKey:UserID;references:UserID"`
}

func (Session) TableName() string {
	return "sessions"
}
