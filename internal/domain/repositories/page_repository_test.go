package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sitepulse/analytics-api/internal/domain/entities"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:repos-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&entities.Website{}, &entities.Page{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestGetOrCreatePageReusesRow(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	ctx := context.Background()

	website := &entities.Website{SiteID: "pages001", Name: "T", URL: "https://t.example.com"}
	require.NoError(t, gdb.Create(website).Error)

	repo := NewPageRepository(gdb)

	title := "Pricing"
	first, err := repo.GetOrCreate(ctx, website.WebsiteID, "https://t.example.com/pricing", &title)
	require.NoError(t, err)

	second, err := repo.GetOrCreate(ctx, website.WebsiteID, "https://t.example.com/pricing", nil)
	require.NoError(t, err)
	require.Equal(t, first.PageID, second.PageID)

	var count int64
	require.NoError(t, gdb.Model(&entities.Page{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestGetOrCreatePageScopedByWebsite(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	ctx := context.Background()

	siteA := &entities.Website{SiteID: "pages002a", Name: "A", URL: "https://a.example.com"}
	siteB := &entities.Website{SiteID: "pages002b", Name: "B", URL: "https://b.example.com"}
	require.NoError(t, gdb.Create(siteA).Error)
	require.NoError(t, gdb.Create(siteB).Error)

	repo := NewPageRepository(gdb)

	// Same path on two websites is two distinct pages.
	pageA, err := repo.GetOrCreate(ctx, siteA.WebsiteID, "https://shop.example.com/cart", nil)
	require.NoError(t, err)
	pageB, err := repo.GetOrCreate(ctx, siteB.WebsiteID, "https://shop.example.com/cart", nil)
	require.NoError(t, err)
	require.NotEqual(t, pageA.PageID, pageB.PageID)
}

func TestIsUniqueViolation(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	website := &entities.Website{SiteID: "pages003", Name: "T", URL: "https://t3.example.com"}
	require.NoError(t, gdb.Create(website).Error)

	dup := &entities.Website{SiteID: "pages003", Name: "T2", URL: "https://t4.example.com"}
	err := gdb.Create(dup).Error
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))

	require.False(t, isUniqueViolation(nil))
	require.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}
