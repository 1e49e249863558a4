package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"daymemory/internal/auth"
	"daymemory/internal/database"
	"daymemory/internal/models"
	"daymemory/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// remindersFromInput converts request reminder shapes into owned rows.
// A reminder with no explicit active flag defaults to active.
func remindersFromInput(inputs []models.ReminderInput) []models.EventReminder {
	reminders := make([]models.EventReminder, 0, len(inputs))
	for _, in := range inputs {
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		reminders = append(reminders, models.EventReminder{
			DaysBeforeEvent: in.DaysBeforeEvent,
			IsActive:        active,
		})
	}
	return reminders
}

// findOwnedEvent loads an active event and checks it belongs to the caller
func findOwnedEvent(c *gin.Context, eventID uint) (*models.Event, bool) {
	userID := auth.GetUserID(c)

	var event models.Event
	err := database.GetDB().Preload("Reminders").First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		} else {
			handleError(c, http.StatusInternalServerError, "database error", err)
		}
		return nil, false
	}
	if event.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this event"})
		return nil, false
	}
	return &event, true
}

// CreateEvent handles the creation of a new event with its reminder set
func CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = models.Custom
	}
	tracking := true
	if req.IsTracking != nil {
		tracking = *req.IsTracking
	}

	event := models.Event{
		UserID:        auth.GetUserID(c),
		Title:         req.Title,
		Description:   req.Description,
		RecipientName: req.RecipientName,
		Relationship:  req.Relationship,
		EventDate:     models.DateOnly(req.EventDate),
		EventType:     eventType,
		IsRecurring:   req.IsRecurring,
		IsActive:      true,
		IsTracking:    tracking,
		Reminders:     remindersFromInput(req.Reminders),
	}

	if err := database.GetDB().Create(&event).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to create event", err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents lists the caller's active events, optionally filtered by type
func GetEvents(c *gin.Context) {
	db := database.GetDB()
	query := db.Preload("Reminders").
		Where("user_id = ? AND is_active = ?", auth.GetUserID(c), true)

	if eventType := c.Query("event_type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		query = query.Where("event_date >= ?", dateFrom)
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		query = query.Where("event_date <= ?", dateTo)
	}

	var events []models.Event
	if err := query.Order("event_date ASC").Find(&events).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to fetch events", err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent returns a single event with its reminders
func GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, ok := findOwnedEvent(c, uint(eventID))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent replaces the event's mutable fields and its reminder set
// wholesale. Reminder log history is untouched.
func UpdateEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, ok := findOwnedEvent(c, uint(eventID))
	if !ok {
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.RecipientName = req.RecipientName
	event.Relationship = req.Relationship
	event.EventDate = models.DateOnly(req.EventDate)
	if req.EventType != "" {
		event.EventType = req.EventType
	}
	event.IsRecurring = req.IsRecurring

	db := database.GetDB()
	if err := db.Omit("Reminders", "User").Save(event).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to update event", err)
		return
	}

	events := store.NewEventStore(db)
	if err := events.ReplaceReminders(event, remindersFromInput(req.Reminders)); err != nil {
		handleError(c, http.StatusInternalServerError, "failed to update reminders", err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent soft-deletes the event so its reminder log history survives
func DeleteEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, ok := findOwnedEvent(c, uint(eventID))
	if !ok {
		return
	}

	if err := store.NewEventStore(database.GetDB()).Deactivate(event); err != nil {
		handleError(c, http.StatusInternalServerError, "failed to delete event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ToggleTracking flips the owner's opt-in to notifications for the event
func ToggleTracking(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, ok := findOwnedEvent(c, uint(eventID))
	if !ok {
		return
	}

	event.ToggleTracking()
	if err := database.GetDB().Model(event).Update("is_tracking", event.IsTracking).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "failed to update tracking", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": event.ID, "is_tracking": event.IsTracking})
}
