package migrations

import (
	"log"

	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"gorm.io/gorm"
)

// Migrate creates or updates the tracking schema. AutoMigrate carries the
// uniqueness constraints — (website_id, visitor_uuid) on users and
// (website_id, url) on pages — and the [0,100] lead-score checks declared on
// the entities.
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	err := db.AutoMigrate(
		&entities.Website{},
		&entities.User{},
		&entities.Session{},
		&entities.Page{},
		&entities.PageView{},
		&entities.ClickEvent{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Database migrations completed")
	return nil
}
