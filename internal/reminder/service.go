package reminder

import (
	"fmt"
	"log"
	"time"

	"daymemory/internal/models"
)

const (
	// lookaheadDays bounds the daily scan window
	lookaheadDays = 365
	// dedupWindow is the rolling guard window: at most one dispatch per
	// (event, offset) pair within it
	dedupWindow = 24 * time.Hour
	// logQueryWindow bounds the unfiltered log listing endpoints
	logQueryWindow = 30 * 24 * time.Hour
)

// Service dispatches event reminders and records every attempt.
type Service struct {
	events EventStore
	logs   LogStore
	sender Sender
	now    func() time.Time
}

func NewService(events EventStore, logs LogStore, sender Sender) *Service {
	return &Service{
		events: events,
		logs:   logs,
		sender: sender,
		now:    time.Now,
	}
}

// DispatchDailyReminders runs the scheduled daily pass: scan events dated in
// [today+1, today+365], and for each event fire the reminders whose offset
// matches the days remaining exactly. Per-reminder failures are contained so
// one bad send cannot abort the rest of the queue; only the initial store
// query can fail the pass.
func (s *Service) DispatchDailyReminders() error {
	today := models.DateOnly(s.now())
	start := today.AddDate(0, 0, 1)
	end := today.AddDate(0, 0, lookaheadDays)

	events, err := s.events.FindTrackingBetween(start, end)
	if err != nil {
		return fmt.Errorf("listing tracking events: %w", err)
	}

	byDate := make(map[time.Time][]models.Event)
	for _, event := range events {
		date := models.DateOnly(event.EventDate)
		byDate[date] = append(byDate[date], event)
	}

	for date, group := range byDate {
		daysUntil := models.DaysBetween(today, date)
		for i := range group {
			s.dispatchForEvent(&group[i], daysUntil)
		}
	}
	return nil
}

// dispatchForEvent fires every active reminder whose offset equals the days
// remaining. Exact match only: an event with a lone 14-day reminder gets
// nothing on day 10.
func (s *Service) dispatchForEvent(event *models.Event, daysUntil int) {
	for _, r := range event.Reminders {
		if r.IsActive && r.DaysBeforeEvent == daysUntil {
			s.sendReminder(event, r.DaysBeforeEvent)
		}
	}
}

// sendReminder is the per-reminder send procedure shared by the scheduled,
// immediate and retry paths. It returns the status that was logged; the empty
// status means the 24h guard suppressed the send and nothing was logged.
func (s *Service) sendReminder(event *models.Event, daysBefore int) models.ReminderStatus {
	now := s.now()

	recent, err := s.logs.FindRecentSent(event.ID, daysBefore, now.Add(-dedupWindow))
	if err != nil {
		log.Printf("reminder guard query failed for event %d (%d days before): %v",
			event.ID, daysBefore, err)
		return s.writeLog(event.ID, daysBefore, models.StatusFailed)
	}
	if recent != nil {
		log.Printf("reminder already sent for event %d (%d days before)",
			event.ID, daysBefore)
		return ""
	}

	subject := fmt.Sprintf("[Day Memory] '%s' D-%d", event.Title, daysBefore)
	body := buildReminderBody(event.Title, daysBefore)

	if err := s.sender.Send(event.User.Email, subject, body); err != nil {
		log.Printf("failed to send reminder for event %d (%d days before): %v",
			event.ID, daysBefore, err)
		return s.writeLog(event.ID, daysBefore, models.StatusFailed)
	}

	log.Printf("reminder sent for event %q (%d days before)", event.Title, daysBefore)
	return s.writeLog(event.ID, daysBefore, models.StatusSent)
}

// writeLog appends the attempt outcome. The log write happens after the send
// completed, so a crash in between can drop a log entry but never duplicates one.
func (s *Service) writeLog(eventID uint, daysBefore int, status models.ReminderStatus) models.ReminderStatus {
	entry := models.ReminderLog{
		EventID:         eventID,
		DaysBeforeEvent: daysBefore,
		SentAt:          s.now(),
		Status:          status,
	}
	if err := s.logs.Save(&entry); err != nil {
		log.Printf("failed to record reminder log for event %d: %v", eventID, err)
	}
	return status
}

// SendImmediate fires a single reminder for the event right now, picking the
// smallest active offset that is already due (offset >= days remaining). A
// past event, or one with no qualifying offset, is a silent no-op.
func (s *Service) SendImmediate(eventID uint) error {
	event, err := s.events.FindByID(eventID)
	if err != nil {
		return err
	}

	today := models.DateOnly(s.now())
	daysUntil := models.DaysBetween(today, event.EventDate)
	if daysUntil < 0 {
		log.Printf("event %d has already passed", eventID)
		return nil
	}

	best := -1
	for _, r := range event.Reminders {
		if !r.IsActive || r.DaysBeforeEvent < daysUntil {
			continue
		}
		if best == -1 || r.DaysBeforeEvent < best {
			best = r.DaysBeforeEvent
		}
	}
	if best == -1 {
		return nil
	}

	s.sendReminder(event, best)
	return nil
}

// RetryFailed re-attempts a failed dispatch. It reports true only when the
// re-attempt was delivered and logged SENT; a re-attempt that fails again is
// logged FAILED and reported as false without an error.
func (s *Service) RetryFailed(logID uint) (bool, error) {
	entry, err := s.logs.FindByID(logID)
	if err != nil {
		return false, err
	}
	if entry.Status == models.StatusSent {
		return false, ErrAlreadySent
	}

	event, err := s.events.FindByID(entry.EventID)
	if err != nil {
		return false, err
	}

	status := s.sendReminder(event, entry.DaysBeforeEvent)
	return status == models.StatusSent, nil
}

// GetLogs lists dispatch history: all entries from the last 30 days, or the
// full history of one event when an id is given.
func (s *Service) GetLogs(eventID *uint) ([]models.ReminderLog, error) {
	if eventID == nil {
		now := s.now()
		return s.logs.FindBetween(now.Add(-logQueryWindow), now)
	}
	if _, err := s.events.FindByID(*eventID); err != nil {
		return nil, err
	}
	return s.logs.FindByEvent(*eventID)
}

// GetFailedLogs lists FAILED entries from the last 30 days.
func (s *Service) GetFailedLogs() ([]models.ReminderLog, error) {
	return s.logs.FindFailedAfter(s.now().Add(-logQueryWindow))
}

func buildReminderBody(title string, daysBefore int) string {
	if daysBefore == 0 {
		return fmt.Sprintf("Today is '%s'! Don't miss it.", title)
	}
	return fmt.Sprintf("'%s' is %d day(s) away. A little preparation now goes a long way!",
		title, daysBefore)
}
