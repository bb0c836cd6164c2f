package entities

import "time"

type Website struct {
	WebsiteID int       `json:"website_id" gorm:"primaryKey;autoIncrement;column:website_id"`
	SiteID    string    `json:"site_id" gorm:"column:site_id;uniqueIndex:idx_websites_site_id;not null"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	URL       string    `json:"url" gorm:"column:url;uniqueIndex:idx_websites_url;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Website) TableName() string {
	return "websites"
}
