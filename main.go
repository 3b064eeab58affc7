// File: /main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"

	"livewall-api/config"
	"livewall-api/database"
	"livewall-api/jobs"
	"livewall-api/middleware"
	"livewall-api/realtime"
	"livewall-api/routes"
	"livewall-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Media store
	mediaService, err := services.NewMediaService(cfg)
	if err != nil {
		log.Fatal("Failed to set up media store:", err)
	}
	if err := mediaService.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warning: could not ensure media bucket: %v", err)
	}

	// Broadcast channel: local hub, optionally relayed over NATS so every
	// instance's stream sees every mutation.
	hub := realtime.NewHub()
	var broadcaster services.Broadcaster = hub
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS:", err)
		}
		relay, err := realtime.NewNATSRelay(hub, nc, cfg.NATSSubject)
		if err != nil {
			log.Fatal("Failed to start NATS relay:", err)
		}
		broadcaster = relay
		log.Printf("Broadcast relay active on %s", cfg.NATSSubject)
	}

	// Audit mail for irreversible moderation actions
	emailService := services.NewEmailService(cfg)

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Request logging middleware
	router.Use(gin.Logger())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, hub, broadcaster, mediaService, emailService)

	// Reclaim uploads nothing references anymore
	sweepJob := jobs.NewMediaSweepJob(db, mediaService, cfg.MediaSweepInterval, cfg.MediaSweepMinAge, cfg.StoreTimeout)
	sweepJob.Start()

	// Start server
	log.Printf("Starting LiveWall API server on port %s", cfg.Port)
	log.Printf("Event stream available at: http://localhost:%s/api/v1/stream", cfg.Port)

	go func() {
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Stop background work on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	sweepJob.Stop()
}
