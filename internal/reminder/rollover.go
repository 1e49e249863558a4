package reminder

import (
	"fmt"
	"log"
	"time"

	"daymemory/internal/models"
)

// Rollover regenerates yearly-recurring events once their date has passed.
type Rollover struct {
	events EventStore
	now    func() time.Time
}

func NewRollover(events EventStore) *Rollover {
	return &Rollover{
		events: events,
		now:    time.Now,
	}
}

// ProcessRecurringEvents runs the daily rollover pass: every active recurring
// event whose date is behind today is copied to its next occurrence and the
// original is deactivated. Store failures abort the pass; the next scheduled
// run re-attempts from scratch.
func (r *Rollover) ProcessRecurringEvents() error {
	today := models.DateOnly(r.now())

	events, err := r.events.FindRecurringActive()
	if err != nil {
		return fmt.Errorf("listing recurring events: %w", err)
	}

	created := 0
	for i := range events {
		if !models.DateOnly(events[i].EventDate).Before(today) {
			continue
		}
		rolled, err := r.createNextYearEvent(&events[i])
		if err != nil {
			return err
		}
		if rolled {
			created++
		}
	}

	log.Printf("recurring events processing completed, created %d events", created)
	return nil
}

// RolloverNow rolls a single event forward regardless of whether its date has
// passed. The event must exist and be flagged recurring.
func (r *Rollover) RolloverNow(eventID uint) error {
	event, err := r.events.FindByID(eventID)
	if err != nil {
		return err
	}
	if !event.IsRecurring {
		return ErrNotRecurring
	}
	_, err = r.createNextYearEvent(event)
	return err
}

// createNextYearEvent copies the event to its next occurrence and deactivates
// the original. The copy keeps recipient, relationship, type, tracking state
// and the full reminder set; the description is intentionally left behind.
// It reports whether a successor was actually created (false on duplicate).
func (r *Rollover) createNextYearEvent(original *models.Event) (bool, error) {
	nextDate := nextOccurrence(models.DateOnly(original.EventDate))

	existing, err := r.events.FindActiveByUser(original.UserID)
	if err != nil {
		return false, fmt.Errorf("checking for existing occurrence: %w", err)
	}
	for _, e := range existing {
		if e.Title == original.Title && models.DateOnly(e.EventDate).Equal(nextDate) {
			log.Printf("next occurrence already exists for %q", original.Title)
			return false, nil
		}
	}

	next := models.Event{
		UserID:        original.UserID,
		Title:         original.Title,
		RecipientName: original.RecipientName,
		Relationship:  original.Relationship,
		EventDate:     nextDate,
		EventType:     original.EventType,
		IsRecurring:   true,
		IsActive:      true,
		IsTracking:    original.IsTracking,
	}
	for _, rem := range original.Reminders {
		next.Reminders = append(next.Reminders, models.EventReminder{
			DaysBeforeEvent: rem.DaysBeforeEvent,
			IsActive:        rem.IsActive,
		})
	}

	if err := r.events.Save(&next); err != nil {
		return false, fmt.Errorf("saving next occurrence: %w", err)
	}
	if err := r.events.Deactivate(original); err != nil {
		return false, fmt.Errorf("deactivating original event: %w", err)
	}

	log.Printf("created recurring event for next year: %s -> %s",
		original.EventDate.Format("2006-01-02"), nextDate.Format("2006-01-02"))
	return true, nil
}

// nextOccurrence returns the event date one year later. A February 29 date
// collapses to February 28 when the next year is not a leap year; time.Date
// would normalize it to March 1 instead, hence the explicit branch.
func nextOccurrence(date time.Time) time.Time {
	year, month, day := date.Date()
	if month == time.February && day == 29 {
		next := year + 1
		if isLeapYear(next) {
			return time.Date(next, time.February, 29, 0, 0, 0, 0, time.UTC)
		}
		return time.Date(next, time.February, 28, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year+1, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
