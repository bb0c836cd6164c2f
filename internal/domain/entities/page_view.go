package entities

import (
	"time"

	"github.com/google/uuid"
)

// PageView with a NULL ViewEnd is an "open" view: the visitor is presumed
// to still be on that page. At most one row per session may be open.
type PageView struct {
	ViewID    int        `json:"view_id" gorm:"primaryKey;autoIncrement;column:view_id"`
	SessionID uuid.UUID  `json:"session_id" gorm:"type:uuid;column:session_id;not null;index:idx_page_views_session_id"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;column:user_id;not null"`
	PageID    int        `json:"page_id" gorm:"column:page_id;not null"`
	ViewStart time.Time  `json:"view_start" gorm:"column:view_start;not null"`
	ViewEnd   *time.Time `json:"view_end" gorm:"column:view_end"`
	Referrer  *string    `json:"referrer" gorm:"column:referrer;type:text"`

	Session Session `json:"-" gorm:"foreignKey:SessionID;references:SessionID"`
	User    User    `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Page    Page    `json:"-" gorm:"foreignKey:PageID;references:PageID"`
}

func (PageView) TableName() string {
	return "page_views"
}
