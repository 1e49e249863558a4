package models

import (
	"time"

	"gorm.io/gorm"
)

// EventType categorizes an event
type EventType string

const (
	Birthday          EventType = "BIRTHDAY"
	Anniversary100    EventType = "ANNIVERSARY_100"
	Anniversary200    EventType = "ANNIVERSARY_200"
	Anniversary300    EventType = "ANNIVERSARY_300"
	Anniversary1Year  EventType = "ANNIVERSARY_1YEAR"
	AnniversaryCustom EventType = "ANNIVERSARY_CUSTOM"
	ValentinesDay     EventType = "VALENTINES_DAY"
	WhiteDay          EventType = "WHITE_DAY"
	RoseDay           EventType = "ROSE_DAY"
	PeperoDay         EventType = "PEPERO_DAY"
	ChristmasEve      EventType = "CHRISTMAS_EVE"
	Christmas         EventType = "CHRISTMAS"
	NewYear           EventType = "NEW_YEAR"
	Holiday           EventType = "HOLIDAY"
	Vacation          EventType = "VACATION"
	Custom            EventType = "CUSTOM"
)

// Event represents a tracked personal date (birthday, anniversary, couple day)
type Event struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"-"`
	Title         string          `gorm:"size:200;not null" json:"title"`
	Description   string          `gorm:"size:1000" json:"description"`
	RecipientName string          `gorm:"size:100" json:"recipient_name"`
	Relationship  string          `gorm:"size:50" json:"relationship"`
	EventDate     time.Time       `gorm:"type:date;not null;index" json:"event_date"`
	EventType     EventType       `gorm:"size:30;not null;default:CUSTOM" json:"event_type"`
	IsRecurring   bool            `gorm:"not null;default:false" json:"is_recurring"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	IsTracking    bool            `gorm:"not null;default:true" json:"is_tracking"`
	Reminders     []EventReminder `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"reminders"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// EventReminder is a per-event "days before" notification setting.
// Reminders are owned by their event: replacing the event's reminder set
// or deleting the event removes them.
type EventReminder struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID         uint      `gorm:"not null;index" json:"event_id"`
	DaysBeforeEvent int       `gorm:"not null" json:"days_before_event"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "event"
}

// TableName specifies the table name for the EventReminder model
func (EventReminder) TableName() string {
	return "event_reminder"
}

// BeforeSave hook is called before saving the event
func (e *Event) BeforeSave(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.UpdatedAt
	}
	return nil
}

// Deactivate soft-deletes the event. Inactive events are excluded from
// reminder dispatch and rollover processing but keep their log history.
func (e *Event) Deactivate() {
	e.IsActive = false
}

// Activate restores a soft-deleted event
func (e *Event) Activate() {
	e.IsActive = true
}

// SetTracking opts the owner in or out of notifications without deleting the event
func (e *Event) SetTracking(tracking bool) {
	e.IsTracking = tracking
}

// ToggleTracking flips the tracking flag
func (e *Event) ToggleTracking() {
	e.IsTracking = !e.IsTracking
}

// ReplaceReminders swaps the reminder set wholesale
func (e *Event) ReplaceReminders(reminders []EventReminder) {
	e.Reminders = reminders
}

// DateOnly truncates a timestamp to its calendar date (UTC midnight),
// so date differences are exact multiples of 24h.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from one date to another
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// ReminderInput is the reminder shape accepted by event create/update requests
type ReminderInput struct {
	DaysBeforeEvent int   `json:"days_before_event" binding:"min=0"`
	IsActive        *bool `json:"is_active"`
}

// CreateEventRequest represents the data needed to create a new event
type CreateEventRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Description   string          `json:"description" binding:"max=1000"`
	RecipientName string          `json:"recipient_name" binding:"max=100"`
	Relationship  string          `json:"relationship" binding:"max=50"`
	EventDate     time.Time       `json:"event_date" binding:"required"`
	EventType     EventType       `json:"event_type"`
	IsRecurring   bool            `json:"is_recurring"`
	IsTracking    *bool           `json:"is_tracking"`
	Reminders     []ReminderInput `json:"reminders" binding:"dive"`
}

// UpdateEventRequest carries a full replacement of the event's mutable fields,
// including its reminder set
type UpdateEventRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Description   string          `json:"description" binding:"max=1000"`
	RecipientName string          `json:"recipient_name" binding:"max=100"`
	Relationship  string          `json:"relationship" binding:"max=50"`
	EventDate     time.Time       `json:"event_date" binding:"required"`
	EventType     EventType       `json:"event_type"`
	IsRecurring   bool            `json:"is_recurring"`
	Reminders     []ReminderInput `json:"reminders" binding:"dive"`
}
