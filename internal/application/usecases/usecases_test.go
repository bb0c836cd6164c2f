package usecases

import (
	"fmt"
	"testing"
	"time"

	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:usecases-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(
		&entities.Website{},
		&entities.User{},
		&entities.Session{},
		&entities.Page{},
		&entities.PageView{},
		&entities.ClickEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedWebsite(t *testing.T, gdb *gorm.DB, siteID string) *entities.Website {
	t.Helper()

	website := &entities.Website{SiteID: siteID, Name: "Test Site", URL: "https://" + siteID + ".example.com"}
	if err := gdb.Create(website).Error; err != nil {
		t.Fatalf("failed to seed website: %v", err)
	}
	return website
}
