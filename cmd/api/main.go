package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
	"github.com/pageza/macrotrack/backend/internal/middleware"
	"github.com/pageza/macrotrack/backend/internal/router"
	"github.com/pageza/macrotrack/backend/internal/server"
	"github.com/pageza/macrotrack/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(config.GetEnvironment().GinMode())

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Services
	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	goalsService := service.NewGoalsService(db)
	lookupService := service.NewFoodLookupService(cfg.FDCBaseURL, cfg.FDCAPIKey, service.NewRedisLookupCache(redisClient), cfg.LookupCacheTTL)
	trackerService := service.NewTrackerService(db, service.NewRedisSelectionStore(redisClient))

	deps := router.Dependencies{
		Auth:          authService,
		Profile:       profileService,
		Goals:         goalsService,
		Lookup:        lookupService,
		Tracker:       trackerService,
		SearchLimiter: middleware.NewFoodSearchRateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow),
		DB:            db,
		Redis:         redisClient,
	}

	s3Ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	storage, err := config.NewS3Config(s3Ctx, cfg.ExportBucket, cfg.AWSRegion)
	cancel()
	if err != nil {
		log.Printf("Diary export disabled: %v", err)
	} else {
		deps.Exporter = service.NewDiaryExporter(db, trackerService, goalsService, storage)
	}

	handler, err := router.SetupRouter(deps)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	// Create and start server
	srv := server.New(cfg, handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
