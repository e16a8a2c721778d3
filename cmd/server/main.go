package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/codelearn-ai/server/internal/config"
	"github.com/codelearn-ai/server/internal/database"
	"github.com/codelearn-ai/server/internal/github"
	"github.com/codelearn-ai/server/internal/handler"
	"github.com/codelearn-ai/server/internal/repository"
	"github.com/codelearn-ai/server/internal/service"
)

// main is the single entry-point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Database: %s", cfg.DBName)
	log.Printf("  - Workers: %d (fetch concurrency %d)", cfg.Workers, cfg.FetchConcurrency)

	// Connect to MongoDB
	client, db, cancel, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(context.Background())
	log.Printf("Connected to MongoDB")

	// Initialize repositories
	configRepo := repository.NewConfigRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	// Initialize GitHub client and the analysis pipeline
	gh := github.NewClient(cfg.GitHubToken)
	if cfg.GitHubToken == "" {
		log.Printf("Warning: GITHUB_TOKEN not set; unauthenticated API limits apply")
	}

	fetcher := service.NewRepoFetcher(gh, cfg.FetchConcurrency)
	engine := service.NewHeuristicEngine()
	analysisSvc := service.NewAnalysisService(configRepo, analysisRepo, fetcher, engine, cfg.Workers, cfg.JobTimeout)
	defer analysisSvc.Close()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Register routes
	handler.RegisterRoutes(app, configRepo, analysisSvc)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
