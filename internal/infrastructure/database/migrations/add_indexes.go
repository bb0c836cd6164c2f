package migrations

import (
	"log"

	"gorm.io/gorm"
)

// AddIndexes creates the query-path indexes that AutoMigrate does not derive
// from entity tags. All are idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []string{
		// Scoring reads the whole session's views and clicks on session end.
		"CREATE INDEX IF NOT EXISTS idx_page_views_session_open ON page_views (session_id) WHERE view_end IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_click_events_session_time ON click_events (session_id, click_time)",
		// User average score scans scored sessions per user.
		"CREATE INDEX IF NOT EXISTS idx_sessions_user_scored ON sessions (user_id) WHERE lead_score IS NOT NULL",
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			return err
		}
	}

	log.Println("✅ Performance indexes ensured")
	return nil
}
