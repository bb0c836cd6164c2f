package entities

import (
	"time"

	"github.com/google/uuid"
)

// ClickEvent rows are immutable once inserted. Whether a click counts as
// "important" is decided at scoring time from ElementText, never stored.
type ClickEvent struct {
	ClickID         int       `json:"click_id" gorm:"primaryKey;autoIncrement;column:click_id"`
	SessionID       uuid.UUID `json:"session_id" gorm:"type:uuid;column:session_id;not null;index:idx_click_events_session_id"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;column:user_id;not null"`
	PageID          int       `json:"page_id" gorm:"column:page_id;not null"`
	ElementSelector string    `json:"element_selector" gorm:"column:element_selector;type:text;not null"`
	ElementText     *string   `json:"element_text" gorm:"column:element_text;type:text"`
	ClickTime       time.Time `json:"click_time" gorm:"column:click_time;not null"`
	XCoord          *int      `json:"x_coord" gorm:"column:x_coord"`
	YCoord          *int      `json:"y_coord" gorm:"column:y_coord"`

	Session Session `json:"-" gorm:"foreignKey:SessionID;references:SessionID"`
	User    User    `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Page    Page    `json:"-" gorm:"foreignKey:PageID;references:PageID"`
}

func (ClickEvent) TableName() string {
	return "click_events"
}
