package reminder

import (
	"time"

	"daymemory/internal/models"
)

// EventStore is the event persistence surface the engine depends on.
// Implementations must return events with their owner and reminder set loaded.
type EventStore interface {
	// FindTrackingBetween lists active, tracking events whose date falls in
	// [start, end] inclusive.
	FindTrackingBetween(start, end time.Time) ([]models.Event, error)
	// FindRecurringActive lists all active recurring events regardless of date.
	FindRecurringActive() ([]models.Event, error)
	// FindByID returns ErrEventNotFound when the event does not exist.
	FindByID(id uint) (*models.Event, error)
	// FindActiveByUser lists a user's active events.
	FindActiveByUser(userID uint) ([]models.Event, error)
	// Save persists a new or updated event together with its reminders.
	Save(event *models.Event) error
	// Deactivate soft-deletes the event.
	Deactivate(event *models.Event) error
}

// LogStore is the reminder log persistence surface.
type LogStore interface {
	// FindRecentSent returns the most recent SENT entry for the
	// (event, daysBefore) pair at or after since, or nil when there is none.
	// Only SENT entries count: a FAILED attempt must not suppress a retry.
	FindRecentSent(eventID uint, daysBefore int, since time.Time) (*models.ReminderLog, error)
	// Save appends a new log entry.
	Save(entry *models.ReminderLog) error
	// FindByID returns ErrLogNotFound when the entry does not exist.
	FindByID(id uint) (*models.ReminderLog, error)
	FindByEvent(eventID uint) ([]models.ReminderLog, error)
	FindFailedAfter(after time.Time) ([]models.ReminderLog, error)
	FindBetween(start, end time.Time) ([]models.ReminderLog, error)
}

// Sender delivers a rendered notification to the event owner's address.
type Sender interface {
	Send(address, subject, body string) error
}
