package handlers

import (
	"net/http"
	"time"

	"daymemory/internal/auth"
	"daymemory/internal/database"
	"daymemory/internal/models"

	"github.com/gin-gonic/gin"
)

// upcomingEvent pairs an event with its countdown for the dashboard view
type upcomingEvent struct {
	models.Event
	DaysUntil int `json:"days_until"`
}

// GetDashboard summarizes the caller's events: the next 30 days of upcoming
// dates with countdowns, plus totals by type and tracking state
func GetDashboard(c *gin.Context) {
	db := database.GetDB()
	userID := auth.GetUserID(c)
	today := models.DateOnly(time.Now())

	var events []models.Event
	err := db.Preload("Reminders").
		Where("user_id = ? AND is_active = ? AND event_date BETWEEN ? AND ?",
			userID, true, today, today.AddDate(0, 0, 30)).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		handleError(c, http.StatusInternalServerError, "failed to fetch upcoming events", err)
		return
	}

	upcoming := make([]upcomingEvent, 0, len(events))
	for _, event := range events {
		upcoming = append(upcoming, upcomingEvent{
			Event:     event,
			DaysUntil: models.DaysBetween(today, event.EventDate),
		})
	}

	var totalActive, totalTracking int64
	if err := db.Model(&models.Event{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&totalActive).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to count events", err)
		return
	}
	if err := db.Model(&models.Event{}).
		Where("user_id = ? AND is_active = ? AND is_tracking = ?", userID, true, true).
		Count(&totalTracking).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to count tracked events", err)
		return
	}

	type typeCount struct {
		EventType models.EventType `json:"event_type"`
		Count     int64            `json:"count"`
	}
	var byType []typeCount
	if err := db.Model(&models.Event{}).
		Select("event_type, count(*) as count").
		Where("user_id = ? AND is_active = ?", userID, true).
		Group("event_type").
		Scan(&byType).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to count events by type", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upcoming":       upcoming,
		"total_active":   totalActive,
		"total_tracking": totalTracking,
		"by_type":        byType,
	})
}
