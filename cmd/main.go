package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/docs/swagger"
	"folio/internal/api"
	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/events"
	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/tasks"
	"folio/internal/tasks/rate"
	"folio/internal/utils/logger"

	"github.com/joho/godotenv"
)

// @title Folio API
// @version 1.0
// @description API documentation for the Folio portfolio backend
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	logger := logger.New("folio")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Session snapshot cache
	sessionCache := services.NewSessionCache(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	defer func() {
		if err := sessionCache.Close(); err != nil {
			logger.Warn("Failed to close session cache: %v", err)
		}
	}()

	// A grant changes what the profile may see, so its cached session
	// snapshot must not outlive the write.
	events.On("grants.issued", func(data interface{}) {
		if issued, ok := data.(*services.GrantIssued); ok {
			sessionCache.Invalidate(context.Background(), issued.ProfileID)
		}
	})

	events.On("profiles.created", func(data interface{}) {
		if profile, ok := data.(*models.Profile); ok {
			logger.Success("New profile registered: %s", profile.CustomID)
		}
	})

	// Initialize task handlers
	taskHandler := tasks.NewTaskHandler(dbInstance, sessionCache)

	// Initialize task server
	taskServer := tasks.NewServer(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		taskHandler,
		logger,
	)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Start task server
	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		logger,
	)

	// Start task scheduler
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	// Task client for the boot catch-up cleanup, also the shared redis
	// connection behind the chat rate limiter
	taskClient := tasks.NewTaskClient(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("Failed to close task client: %v", err)
		}
	}()

	if err := taskClient.EnqueueSessionCleanup(serverCtx); err != nil {
		logger.Warn("Failed to enqueue startup session cleanup: %v", err)
	}

	chatLimiter := rate.NewLimiter(taskClient.GetRedis(), "assistant_chat", rate.Limit{
		Window:    time.Minute,
		MaxEvents: 10,
	})

	// Object storage is optional; without it avatars and private
	// document downloads are disabled but everything else runs.
	var s3Service *services.S3Service
	if cfg.Storage.S3.BucketName != "" {
		s3Service, err = services.NewS3Service(
			cfg.Storage.S3.BucketName,
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Region,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
		)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		models.RegisterMediaURLGenerator(s3Service)
	} else {
		logger.Warn("S3 not configured, media URLs disabled")
	}

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance, sessionCache, s3Service, chatLimiter)
	go func() {
		logger.Success("API server started")

		// Swagger documentation
		swagger.SwaggerInfo.Title = "Folio API Documentation"
		swagger.SwaggerInfo.Description = "API documentation for the Folio portfolio backend"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.Host
		swagger.SwaggerInfo.Schemes = []string{"http", "https"}

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	taskScheduler.Stop()

	// Stop task server
	serverCancel()
	taskServer.Shutdown()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}
