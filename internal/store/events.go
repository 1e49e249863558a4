package store

import (
	"errors"
	"time"

	"daymemory/internal/models"
	"daymemory/internal/reminder"

	"gorm.io/gorm"
)

// EventStore is the gorm-backed event repository consumed by the engine.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) FindTrackingBetween(start, end time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Preload("Reminders").Preload("User").
		Where("is_active = ? AND is_tracking = ? AND event_date BETWEEN ? AND ?",
			true, true, start, end).
		Find(&events).Error
	return events, err
}

func (s *EventStore) FindRecurringActive() ([]models.Event, error) {
	var events []models.Event
	err := s.db.Preload("Reminders").Preload("User").
		Where("is_recurring = ? AND is_active = ?", true, true).
		Find(&events).Error
	return events, err
}

func (s *EventStore) FindByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.Preload("Reminders").Preload("User").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reminder.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventStore) FindActiveByUser(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Preload("Reminders").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (s *EventStore) Save(event *models.Event) error {
	return s.db.Save(event).Error
}

func (s *EventStore) Deactivate(event *models.Event) error {
	event.Deactivate()
	return s.db.Model(event).Update("is_active", false).Error
}

// ReplaceReminders deletes the event's reminder rows and writes the new set.
// Used by the update endpoint; log history is untouched since logs reference
// the (event, offset) pair, not reminder rows.
func (s *EventStore) ReplaceReminders(event *models.Event, reminders []models.EventReminder) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).
			Delete(&models.EventReminder{}).Error; err != nil {
			return err
		}
		for i := range reminders {
			reminders[i].EventID = event.ID
		}
		if len(reminders) > 0 {
			if err := tx.Create(&reminders).Error; err != nil {
				return err
			}
		}
		event.ReplaceReminders(reminders)
		return nil
	})
}
