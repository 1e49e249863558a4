package main

import (
	"fmt"
	"log"
	"os"

	"daymemory/internal/auth"
	"daymemory/internal/database"
	"daymemory/internal/handlers"
	"daymemory/internal/reminder"
	"daymemory/internal/services"
	"daymemory/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env in development; in production the environment is set externally
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Wire the reminder engine and start the daily schedules
	db := database.GetDB()
	events := store.NewEventStore(db)
	reminders := reminder.NewService(events, store.NewLogStore(db), services.NewEmailService())
	rollover := reminder.NewRollover(events)

	scheduler := services.NewScheduler(reminders, rollover)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer scheduler.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS for the web client
	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CLIENT_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth required)
	router.POST("/auth/register", handlers.Register)
	router.POST("/auth/login", handlers.Login)

	// Protected routes (auth required)
	protected := router.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/auth/me", handlers.GetCurrentUser)

		// Event routes
		protected.POST("/events", handlers.CreateEvent)
		protected.GET("/events", handlers.GetEvents)
		protected.GET("/events/:id", handlers.GetEvent)
		protected.PUT("/events/:id", handlers.UpdateEvent)
		protected.DELETE("/events/:id", handlers.DeleteEvent)
		protected.PATCH("/events/:id/tracking", handlers.ToggleTracking)

		// Reminder routes
		protected.GET("/reminders/logs", handlers.GetReminderLogs)
		protected.GET("/reminders/logs/failed", handlers.GetFailedReminderLogs)
		protected.POST("/reminders/retry/:logId", handlers.RetryReminder)
		protected.POST("/reminders/immediate/:eventId", handlers.SendImmediateReminder)
		protected.POST("/reminders/rollover/:eventId", handlers.RolloverEvent)

		// Gift routes
		protected.POST("/gifts", handlers.CreateGift)
		protected.GET("/gifts", handlers.GetGifts)
		protected.PUT("/gifts/:id", handlers.UpdateGift)
		protected.DELETE("/gifts/:id", handlers.DeleteGift)

		// Dashboard
		protected.GET("/dashboard", handlers.GetDashboard)
	}

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server starting on port %s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
