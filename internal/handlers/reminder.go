package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"daymemory/internal/reminder"

	"github.com/gin-gonic/gin"
)

// GetReminderLogs lists dispatch history: the last 30 days, or one event's
// full history when eventId is given
func GetReminderLogs(c *gin.Context) {
	var eventID *uint
	if raw := c.Query("eventId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		id := uint(parsed)
		eventID = &id
	}

	logs, err := reminderService().GetLogs(eventID)
	if err != nil {
		if errors.Is(err, reminder.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "failed to fetch reminder logs", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetFailedReminderLogs lists FAILED entries from the last 30 days
func GetFailedReminderLogs(c *gin.Context) {
	logs, err := reminderService().GetFailedLogs()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "failed to fetch failed reminders", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RetryReminder re-attempts a failed dispatch
func RetryReminder(c *gin.Context) {
	logID, err := strconv.ParseUint(c.Param("logId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	success, err := reminderService().RetryFailed(uint(logID))
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder log not found"})
		case errors.Is(err, reminder.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, reminder.ErrAlreadySent):
			c.JSON(http.StatusConflict, gin.H{"error": "reminder already sent"})
		default:
			handleError(c, http.StatusInternalServerError, "failed to retry reminder", err)
		}
		return
	}

	message := "reminder was re-sent"
	if !success {
		message = "reminder re-send failed"
	}
	c.JSON(http.StatusOK, gin.H{"success": success, "message": message})
}

// SendImmediateReminder fires the event's nearest due reminder right now
func SendImmediateReminder(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := reminderService().SendImmediate(uint(eventID)); err != nil {
		if errors.Is(err, reminder.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "failed to send reminder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "immediate reminder dispatched"})
}

// RolloverEvent manually rolls a recurring event forward to its next occurrence
func RolloverEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := rolloverEngine().RolloverNow(uint(eventID)); err != nil {
		switch {
		case errors.Is(err, reminder.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, reminder.ErrNotRecurring):
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is not recurring"})
		default:
			handleError(c, http.StatusInternalServerError, "failed to roll event over", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event rolled over to next occurrence"})
}
