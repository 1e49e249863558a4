package store

import (
	"errors"
	"time"

	"daymemory/internal/models"
	"daymemory/internal/reminder"

	"gorm.io/gorm"
)

// LogStore is the gorm-backed reminder log repository consumed by the engine.
type LogStore struct {
	db *gorm.DB
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

// FindRecentSent matches SENT entries only, so a FAILED attempt inside the
// guard window never blocks a retry.
func (s *LogStore) FindRecentSent(eventID uint, daysBefore int, since time.Time) (*models.ReminderLog, error) {
	var entry models.ReminderLog
	err := s.db.
		Where("event_id = ? AND days_before_event = ? AND sent_at >= ? AND status = ?",
			eventID, daysBefore, since, models.StatusSent).
		Order("sent_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *LogStore) Save(entry *models.ReminderLog) error {
	return s.db.Create(entry).Error
}

func (s *LogStore) FindByID(id uint) (*models.ReminderLog, error) {
	var entry models.ReminderLog
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reminder.ErrLogNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *LogStore) FindByEvent(eventID uint) ([]models.ReminderLog, error) {
	var entries []models.ReminderLog
	err := s.db.Where("event_id = ?", eventID).
		Order("sent_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *LogStore) FindFailedAfter(after time.Time) ([]models.ReminderLog, error) {
	var entries []models.ReminderLog
	err := s.db.Where("status = ? AND sent_at >= ?", models.StatusFailed, after).
		Order("sent_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *LogStore) FindBetween(start, end time.Time) ([]models.ReminderLog, error) {
	var entries []models.ReminderLog
	err := s.db.Where("sent_at BETWEEN ? AND ?", start, end).
		Order("sent_at DESC").
		Find(&entries).Error
	return entries, err
}
