package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitepulse/analytics-api/internal/infrastructure/cache"
	"github.com/sitepulse/analytics-api/internal/infrastructure/database"
	"github.com/sitepulse/analytics-api/internal/interfaces/http/middleware"
	"github.com/sitepulse/analytics-api/internal/interfaces/http/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	// Initialize database. Failure here is unrecoverable: the process
	// cannot serve anything without the store.
	db, err := database.SetupDatabase()
	if err != nil {
		log.Fatalf("❌ Error setting up database: %v", err)
	}

	siteCache := cache.New()

	app := fiber.New(fiber.Config{
		Concurrency:  256 * 1024,
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)

	// Setup routes
	routes.SetupRoutes(app, db, siteCache)

	// Graceful shutdown: stop accepting, drain, then close the pool.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		_ = app.Shutdown()
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	siteCache.StopJanitor()
	database.Close(db)
	log.Println("✅ Shutdown complete")
}
