package handlers

import (
	"log"
	"net/http"

	"daymemory/internal/database"
	"daymemory/internal/reminder"
	"daymemory/internal/services"
	"daymemory/internal/store"

	"github.com/gin-gonic/gin"
)

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// reminderService wires the engine against the live database and mailer
func reminderService() *reminder.Service {
	db := database.GetDB()
	return reminder.NewService(store.NewEventStore(db), store.NewLogStore(db), services.NewEmailService())
}

// rolloverEngine wires the rollover engine against the live database
func rolloverEngine() *reminder.Rollover {
	return reminder.NewRollover(store.NewEventStore(database.GetDB()))
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Day Memory!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
