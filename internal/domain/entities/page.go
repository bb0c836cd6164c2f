package entities

// Page rows are created lazily the first time a URL shows up for a website.
type Page struct {
	PageID    int     `json:"page_id" gorm:"primaryKey;autoIncrement;column:page_id"`
	WebsiteID int     `json:"website_id" gorm:"column:website_id;not null;uniqueIndex:idx_pages_website_url"`
	URL       string  `json:"url" gorm:"column:url;not null;uniqueIndex:idx_pages_website_url"`
	Title     *string `json:"title" gorm:"column:title"`

	Website Website `json:"-" gorm:"foreignKey:WebsiteID;references:WebsiteID"`
}

func (Page) TableName() string {
	return "pages"
}
