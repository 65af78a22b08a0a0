package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/dayboard/backend/internal/config"
	"github.com/user/dayboard/backend/internal/database"
	"github.com/user/dayboard/backend/internal/handler"
	"github.com/user/dayboard/backend/internal/jobs"
	"github.com/user/dayboard/backend/internal/middleware"
	"github.com/user/dayboard/backend/internal/notification/slack"
	"github.com/user/dayboard/backend/internal/repository"
	"github.com/user/dayboard/backend/internal/service"
	"github.com/user/dayboard/backend/pkg/jwt"
)

func main() {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize JWT manager
	jwtManager := jwt.NewManager(cfg.JWTSecret)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// Initialize Slack client for signup notifications
	var slackClient *slack.Client
	if cfg.SlackWebhookURL != "" {
		slackClient = slack.NewClient(cfg.SlackWebhookURL)
		log.Printf("Slack notification client initialized")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, slackClient)
	reminderService := service.NewReminderService(reminderRepo, areaRepo)
	areaService := service.NewAreaService(areaRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	areaHandler := handler.NewAreaHandler(areaService)

	// Set up Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// Rate limiter: 100 requests per minute
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	r.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "app": "dayboard"})
	})

	// Auth endpoints
	r.POST("/api/auth/google", authHandler.Google)
	r.POST("/api/auth/refresh", authHandler.Refresh)

	// Data endpoints, scoped to the authenticated user
	api := r.Group("/api", middleware.AuthMiddleware(jwtManager))
	{
		api.GET("/reminders", reminderHandler.List)
		api.POST("/reminders", reminderHandler.Create)
		api.PATCH("/reminders/:id", reminderHandler.Patch)
		api.DELETE("/reminders/:id", reminderHandler.Delete)

		api.GET("/areas", areaHandler.List)
		api.POST("/areas", areaHandler.Create)
	}

	// Cron endpoint for purging soft-deleted accounts
	// Called by the platform scheduler daily
	accountPurgeJob := jobs.NewAccountPurgeJob(db)
	r.POST("/api/cron/account-purge", func(c *gin.Context) {
		// Verify cron secret
		authHeader := c.GetHeader("Authorization")
		if authHeader != "Bearer "+cfg.CronSecret {
			c.JSON(401, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 55*time.Second)
		defer cancel()

		// Purge accounts deleted more than 30 days ago
		count, err := accountPurgeJob.PurgeDeletedAccounts(ctx, 30)
		if err != nil {
			log.Printf("Error purging deleted accounts: %v", err)
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"purged": count})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Dayboard API on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
