package reminder

import (
	"errors"
	"testing"
	"time"

	"daymemory/internal/models"
)

var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func testEvent(id, userID uint, email string, date time.Time, offsets ...int) *models.Event {
	event := &models.Event{
		ID:         id,
		UserID:     userID,
		User:       models.User{ID: userID, Email: email},
		Title:      "Mom's birthday",
		EventDate:  date,
		EventType:  models.Birthday,
		IsActive:   true,
		IsTracking: true,
	}
	for _, d := range offsets {
		event.Reminders = append(event.Reminders, models.EventReminder{
			EventID:         id,
			DaysBeforeEvent: d,
			IsActive:        true,
		})
	}
	return event
}

func newTestService(events *fakeEventStore, logs *fakeLogStore, sender *fakeSender) *Service {
	svc := NewService(events, logs, sender)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestDispatchSendsExactOffsetMatch(t *testing.T) {
	today := models.DateOnly(testNow)
	due := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 7), 7)
	notDue := testEvent(2, 1, "owner@example.com", today.AddDate(0, 0, 10), 14)

	events := newFakeEventStore(due, notDue)
	logs := newFakeLogStore()
	sender := &fakeSender{}

	if err := newTestService(events, logs, sender).DispatchDailyReminders(); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(sender.sent))
	}
	if sender.sent[0].address != "owner@example.com" {
		t.Errorf("sent to %q, want owner address", sender.sent[0].address)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.EventID != 1 || entry.DaysBeforeEvent != 7 || entry.Status != models.StatusSent {
		t.Errorf("unexpected log entry: %+v", entry)
	}
}

func TestDispatchSkipsInactiveAndUntracked(t *testing.T) {
	today := models.DateOnly(testNow)

	inactiveReminder := testEvent(1, 1, "a@example.com", today.AddDate(0, 0, 3), 3)
	inactiveReminder.Reminders[0].IsActive = false

	inactiveEvent := testEvent(2, 1, "a@example.com", today.AddDate(0, 0, 3), 3)
	inactiveEvent.IsActive = false

	untracked := testEvent(3, 1, "a@example.com", today.AddDate(0, 0, 3), 3)
	untracked.IsTracking = false

	events := newFakeEventStore(inactiveReminder, inactiveEvent, untracked)
	logs := newFakeLogStore()
	sender := &fakeSender{}

	if err := newTestService(events, logs, sender).DispatchDailyReminders(); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if len(sender.sent) != 0 || len(logs.entries) != 0 {
		t.Fatalf("expected no sends, got %d sends and %d logs", len(sender.sent), len(logs.entries))
	}
}

func TestDispatchIdempotentWithinWindow(t *testing.T) {
	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 7), 7)

	events := newFakeEventStore(event)
	logs := newFakeLogStore()
	sender := &fakeSender{}
	svc := newTestService(events, logs, sender)

	if err := svc.DispatchDailyReminders(); err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}
	// second run an hour later, well inside the 24h guard window
	svc.now = func() time.Time { return testNow.Add(time.Hour) }
	if err := svc.DispatchDailyReminders(); err != nil {
		t.Fatalf("second dispatch failed: %v", err)
	}

	if len(logs.entries) != 1 {
		t.Fatalf("expected one log entry after double dispatch, got %d", len(logs.entries))
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one send after double dispatch, got %d", len(sender.sent))
	}
}

func TestDispatchContainsSendFailures(t *testing.T) {
	today := models.DateOnly(testNow)
	failing := testEvent(1, 1, "down@example.com", today.AddDate(0, 0, 7), 7)
	healthy := testEvent(2, 2, "up@example.com", today.AddDate(0, 0, 7), 7)

	events := newFakeEventStore(failing, healthy)
	logs := newFakeLogStore()
	sender := &fakeSender{failFor: map[string]error{"down@example.com": errors.New("smtp down")}}

	if err := newTestService(events, logs, sender).DispatchDailyReminders(); err != nil {
		t.Fatalf("dispatch should contain send failures, got: %v", err)
	}

	if len(logs.entries) != 2 {
		t.Fatalf("expected two log entries, got %d", len(logs.entries))
	}
	statuses := map[uint]models.ReminderStatus{}
	for _, e := range logs.entries {
		statuses[e.EventID] = e.Status
	}
	if statuses[1] != models.StatusFailed {
		t.Errorf("failing event logged %s, want FAILED", statuses[1])
	}
	if statuses[2] != models.StatusSent {
		t.Errorf("healthy event logged %s, want SENT", statuses[2])
	}
}

func TestDispatchAbortsOnStoreFailure(t *testing.T) {
	events := newFakeEventStore()
	events.listErr = errors.New("connection refused")
	logs := newFakeLogStore()

	err := newTestService(events, logs, &fakeSender{}).DispatchDailyReminders()
	if err == nil {
		t.Fatal("expected error when the event query fails")
	}
	if len(logs.entries) != 0 {
		t.Fatalf("no log should be written before the failing read, got %d", len(logs.entries))
	}
}

func TestRetryAfterFailureSends(t *testing.T) {
	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 7), 7)

	failed := &models.ReminderLog{
		ID:              500,
		EventID:         1,
		DaysBeforeEvent: 7,
		SentAt:          testNow.Add(-time.Minute),
		Status:          models.StatusFailed,
	}

	events := newFakeEventStore(event)
	logs := newFakeLogStore(failed)
	sender := &fakeSender{}

	// the recent FAILED entry must not trip the 24h guard
	success, err := newTestService(events, logs, sender).RetryFailed(500)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !success {
		t.Fatal("retry should report success")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one send on retry, got %d", len(sender.sent))
	}
	if len(logs.entries) != 2 {
		t.Fatalf("retry must append a new entry, got %d total", len(logs.entries))
	}
	if logs.entries[0].Status != models.StatusFailed {
		t.Error("original FAILED entry must not be mutated")
	}
	if logs.entries[1].Status != models.StatusSent {
		t.Errorf("new entry status = %s, want SENT", logs.entries[1].Status)
	}
}

func TestRetryOnSentEntry(t *testing.T) {
	sent := &models.ReminderLog{
		ID:              500,
		EventID:         1,
		DaysBeforeEvent: 7,
		SentAt:          testNow.Add(-time.Hour),
		Status:          models.StatusSent,
	}
	logs := newFakeLogStore(sent)
	sender := &fakeSender{}

	_, err := newTestService(newFakeEventStore(), logs, sender).RetryFailed(500)
	if !errors.Is(err, ErrAlreadySent) {
		t.Fatalf("expected ErrAlreadySent, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no send must happen for an already sent reminder")
	}
}

func TestRetryUnknownLog(t *testing.T) {
	_, err := newTestService(newFakeEventStore(), newFakeLogStore(), &fakeSender{}).RetryFailed(999)
	if !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestRetrySuppressedByLaterSent(t *testing.T) {
	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 7), 7)

	failed := &models.ReminderLog{
		ID: 500, EventID: 1, DaysBeforeEvent: 7,
		SentAt: testNow.Add(-2 * time.Hour), Status: models.StatusFailed,
	}
	laterSent := &models.ReminderLog{
		ID: 501, EventID: 1, DaysBeforeEvent: 7,
		SentAt: testNow.Add(-time.Hour), Status: models.StatusSent,
	}

	logs := newFakeLogStore(failed, laterSent)
	sender := &fakeSender{}

	success, err := newTestService(newFakeEventStore(event), logs, sender).RetryFailed(500)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if success {
		t.Fatal("retry must be suppressed when a SENT entry exists within the window")
	}
	if len(sender.sent) != 0 || len(logs.entries) != 2 {
		t.Fatal("suppressed retry must neither send nor log")
	}
}

func TestSendImmediatePicksNearestDueOffset(t *testing.T) {
	today := models.DateOnly(testNow)
	// event in 10 days with offsets 3, 7 and 14: only 14 is already due
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 10), 3, 7, 14)

	logs := newFakeLogStore()
	sender := &fakeSender{}

	if err := newTestService(newFakeEventStore(event), logs, sender).SendImmediate(1); err != nil {
		t.Fatalf("immediate send failed: %v", err)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(logs.entries))
	}
	if logs.entries[0].DaysBeforeEvent != 14 {
		t.Errorf("chosen offset = %d, want 14", logs.entries[0].DaysBeforeEvent)
	}
}

func TestSendImmediatePastEventIsNoop(t *testing.T) {
	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, -1), 7)

	logs := newFakeLogStore()
	sender := &fakeSender{}

	if err := newTestService(newFakeEventStore(event), logs, sender).SendImmediate(1); err != nil {
		t.Fatalf("past event should be a silent no-op, got: %v", err)
	}
	if len(sender.sent) != 0 || len(logs.entries) != 0 {
		t.Fatal("past event must not send or log")
	}
}

func TestSendImmediateNoQualifyingOffset(t *testing.T) {
	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 10), 3, 7)

	sender := &fakeSender{}
	if err := newTestService(newFakeEventStore(event), newFakeLogStore(), sender).SendImmediate(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no offset is due yet, nothing should send")
	}
}

func TestSendImmediateUnknownEvent(t *testing.T) {
	err := newTestService(newFakeEventStore(), newFakeLogStore(), &fakeSender{}).SendImmediate(42)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestGetLogsWindows(t *testing.T) {
	recent := &models.ReminderLog{
		ID: 1, EventID: 1, DaysBeforeEvent: 7,
		SentAt: testNow.AddDate(0, 0, -10), Status: models.StatusFailed,
	}
	old := &models.ReminderLog{
		ID: 2, EventID: 1, DaysBeforeEvent: 7,
		SentAt: testNow.AddDate(0, 0, -40), Status: models.StatusFailed,
	}

	today := models.DateOnly(testNow)
	event := testEvent(1, 1, "owner@example.com", today.AddDate(0, 0, 7), 7)
	svc := newTestService(newFakeEventStore(event), newFakeLogStore(recent, old), &fakeSender{})

	all, err := svc.GetLogs(nil)
	if err != nil {
		t.Fatalf("GetLogs failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != 1 {
		t.Fatalf("unfiltered logs should cover 30 days only, got %d entries", len(all))
	}

	eventID := uint(1)
	byEvent, err := svc.GetLogs(&eventID)
	if err != nil {
		t.Fatalf("GetLogs by event failed: %v", err)
	}
	if len(byEvent) != 2 {
		t.Fatalf("per-event history should be unbounded, got %d entries", len(byEvent))
	}

	failed, err := svc.GetFailedLogs()
	if err != nil {
		t.Fatalf("GetFailedLogs failed: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("failed logs should cover 30 days only, got %d entries", len(failed))
	}

	missing := uint(42)
	if _, err := svc.GetLogs(&missing); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound for unknown event, got %v", err)
	}
}
