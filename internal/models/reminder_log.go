package models

import "time"

// ReminderStatus is the outcome of a single dispatch attempt
type ReminderStatus string

const (
	StatusSent   ReminderStatus = "SENT"
	StatusFailed ReminderStatus = "FAILED"
)

// ReminderLog records one reminder dispatch attempt. Entries reference the
// (event, days_before_event) pair rather than a reminder row, so reconfiguring
// an event's reminders never orphans its history. Entries are append-only.
type ReminderLog struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID         uint           `gorm:"not null;index:idx_event_days_sent" json:"event_id"`
	Event           Event          `gorm:"foreignKey:EventID" json:"-"`
	DaysBeforeEvent int            `gorm:"not null;index:idx_event_days_sent" json:"days_before_event"`
	SentAt          time.Time      `gorm:"not null;index:idx_event_days_sent" json:"sent_at"`
	Status          ReminderStatus `gorm:"size:10;not null;default:SENT" json:"status"`
}

// TableName specifies the table name for the ReminderLog model
func (ReminderLog) TableName() string {
	return "reminder_log"
}
