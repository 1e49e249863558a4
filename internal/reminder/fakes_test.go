package reminder

import (
	"time"

	"daymemory/internal/models"
)

// In-memory stand-ins for the store and sender interfaces.

type fakeEventStore struct {
	events      map[uint]*models.Event
	listErr     error
	deactivated []uint
	saved       []*models.Event
	nextID      uint
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	s := &fakeEventStore{events: make(map[uint]*models.Event), nextID: 100}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) FindTrackingBetween(start, end time.Time) ([]models.Event, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Event
	for _, e := range s.events {
		date := models.DateOnly(e.EventDate)
		if e.IsActive && e.IsTracking && !date.Before(start) && !date.After(end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) FindRecurringActive() ([]models.Event, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Event
	for _, e := range s.events {
		if e.IsRecurring && e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) FindByID(id uint) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	found := *e
	return &found, nil
}

func (s *fakeEventStore) FindActiveByUser(userID uint) ([]models.Event, error) {
	var out []models.Event
	for _, e := range s.events {
		if e.UserID == userID && e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) Save(event *models.Event) error {
	if event.ID == 0 {
		event.ID = s.nextID
		s.nextID++
	}
	stored := *event
	s.events[event.ID] = &stored
	s.saved = append(s.saved, &stored)
	return nil
}

func (s *fakeEventStore) Deactivate(event *models.Event) error {
	event.Deactivate()
	if stored, ok := s.events[event.ID]; ok {
		stored.IsActive = false
	}
	s.deactivated = append(s.deactivated, event.ID)
	return nil
}

type fakeLogStore struct {
	entries []*models.ReminderLog
	nextID  uint
}

func newFakeLogStore(entries ...*models.ReminderLog) *fakeLogStore {
	return &fakeLogStore{entries: entries, nextID: 1000}
}

func (s *fakeLogStore) FindRecentSent(eventID uint, daysBefore int, since time.Time) (*models.ReminderLog, error) {
	var best *models.ReminderLog
	for _, e := range s.entries {
		if e.EventID != eventID || e.DaysBeforeEvent != daysBefore {
			continue
		}
		if e.Status != models.StatusSent || e.SentAt.Before(since) {
			continue
		}
		if best == nil || e.SentAt.After(best.SentAt) {
			best = e
		}
	}
	return best, nil
}

func (s *fakeLogStore) Save(entry *models.ReminderLog) error {
	if entry.ID == 0 {
		entry.ID = s.nextID
		s.nextID++
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeLogStore) FindByID(id uint) (*models.ReminderLog, error) {
	for _, e := range s.entries {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, ErrLogNotFound
}

func (s *fakeLogStore) FindByEvent(eventID uint) ([]models.ReminderLog, error) {
	var out []models.ReminderLog
	for _, e := range s.entries {
		if e.EventID == eventID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeLogStore) FindFailedAfter(after time.Time) ([]models.ReminderLog, error) {
	var out []models.ReminderLog
	for _, e := range s.entries {
		if e.Status == models.StatusFailed && !e.SentAt.Before(after) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeLogStore) FindBetween(start, end time.Time) ([]models.ReminderLog, error) {
	var out []models.ReminderLog
	for _, e := range s.entries {
		if !e.SentAt.Before(start) && !e.SentAt.After(end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

type sentMail struct {
	address string
	subject string
	body    string
}

type fakeSender struct {
	sent    []sentMail
	failFor map[string]error
}

func (s *fakeSender) Send(address, subject, body string) error {
	if err, ok := s.failFor[address]; ok {
		return err
	}
	s.sent = append(s.sent, sentMail{address: address, subject: subject, body: body})
	return nil
}
