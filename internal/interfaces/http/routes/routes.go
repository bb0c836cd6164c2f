package routes

import (
	"os"
	"strings"

	"github.com/sitepulse/analytics-api/internal/application/usecases"
	"github.com/sitepulse/analytics-api/internal/domain/repositories"
	"github.com/sitepulse/analytics-api/internal/infrastructure/cache"
	"github.com/sitepulse/analytics-api/internal/interfaces/http/handlers"
	"github.com/sitepulse/analytics-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

// scoringConfigFromEnv lets deployments override the high-intent phrase set
// without a rebuild: IMPORTANT_CLICK_TEXTS="be an early bird,get a demo".
func scoringConfigFromEnv() usecases.ScoringConfig {
	raw := os.Getenv("IMPORTANT_CLICK_TEXTS")
	if raw == "" {
		return usecases.DefaultScoringConfig()
	}
	return usecases.NewScoringConfig(strings.Split(raw, ","))
}

func SetupRoutes(app *fiber.App, db *gorm.DB, siteCache *cache.Cache) {
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		status := "healthy"
		database := "connected"
		if err != nil {
			status = "unhealthy"
			database = "disconnected"
		}
		return c.JSON(fiber.Map{"status": status, "database": database})
	})

	// Repositories
	websiteRepo := repositories.NewWebsiteRepository(db, siteCache)
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	pageRepo := repositories.NewPageRepository(db)
	pageViewRepo := repositories.NewPageViewRepository(db)
	clickRepo := repositories.NewClickEventRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// Use Cases
	scoringUseCase := usecases.NewLeadScoringUseCase(sessionRepo, pageViewRepo, clickRepo, userRepo, scoringConfigFromEnv())
	userUseCase := usecases.NewUserUseCase(websiteRepo, userRepo)
	sessionUseCase := usecases.NewSessionUseCase(websiteRepo, userRepo, sessionRepo, pageViewRepo, scoringUseCase)
	pageViewUseCase := usecases.NewPageViewUseCase(websiteRepo, userRepo, pageRepo, pageViewRepo)
	clickEventUseCase := usecases.NewClickEventUseCase(websiteRepo, userRepo, pageRepo, clickRepo)
	websiteUseCase := usecases.NewWebsiteUseCase(websiteRepo)
	analyticsUseCase := usecases.NewAnalyticsUseCase(websiteRepo, analyticsRepo)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionUseCase)
	pageViewHandler := handlers.NewPageViewHandler(pageViewUseCase)
	clickEventHandler := handlers.NewClickEventHandler(clickEventUseCase)
	userHandler := handlers.NewUserHandler(userUseCase)
	websiteHandler := handlers.NewWebsiteHandler(websiteUseCase)
	scoringHandler := handlers.NewLeadScoringHandler(scoringUseCase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUseCase)
	authHandler := handlers.NewAuthHandler()

	// Public ingest routes, hit by the tracking snippet on customer sites
	api := app.Group("/api")
	api.Post("/sessions", sessionHandler.HandleSessionEvent)
	api.Post("/page-views", pageViewHandler.TrackPageView)
	api.Post("/click-events", clickEventHandler.TrackClickEvent)
	api.Post("/users", userHandler.CreateUser)
	api.Put("/users", userHandler.UpdateUser)

	app.Post("/auth/token", authHandler.IssueToken)

	// Dashboard routes, JWT required
	dashboard := app.Group("/api", middleware.AuthRequired())
	dashboard.Post("/websites", websiteHandler.CreateWebsite)
	dashboard.Get("/websites", websiteHandler.GetWebsites)
	dashboard.Get("/websites/:site_id", websiteHandler.GetWebsite)
	dashboard.Get("/analytics/:site_id/metrics", analyticsHandler.GetWebsiteMetrics)
	dashboard.Get("/sessions/:session_id", sessionHandler.GetSession)
	dashboard.Get("/users/:site_id/:visitor_uuid", userHandler.GetUser)
	dashboard.Post("/lead-score/session", scoringHandler.CalculateSessionScore)
	dashboard.Post("/lead-score/session/update", scoringHandler.UpdateSessionScore)
	dashboard.Post("/lead-score/user", scoringHandler.CalculateUserScore)
	dashboard.Post("/lead-score/user/update", scoringHandler.UpdateUserScore)
	dashboard.Get("/lead-score/session/:session_id", scoringHandler.GetSessionScoreBreakdown)
}
