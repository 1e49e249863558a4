package services

import (
	"log"

	"daymemory/internal/reminder"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the two daily passes: reminder dispatch at 09:00 and
// recurring-event rollover at midnight, server local time. The passes are
// independent timers; neither waits on the other.
type Scheduler struct {
	cron      *cron.Cron
	reminders *reminder.Service
	rollover  *reminder.Rollover
}

func NewScheduler(reminders *reminder.Service, rollover *reminder.Rollover) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		rollover:  rollover,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", s.dispatchReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 * * *", s.processRollover); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Scheduler started: reminder dispatch at 09:00, rollover at 00:00")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// dispatchReminders is fire-and-forget: outcomes are observable only through
// the reminder log endpoints.
func (s *Scheduler) dispatchReminders() {
	log.Println("Starting daily reminder check...")
	if err := s.reminders.DispatchDailyReminders(); err != nil {
		log.Printf("Daily reminder pass aborted: %v", err)
		return
	}
	log.Println("Daily reminder check completed")
}

func (s *Scheduler) processRollover() {
	log.Println("Starting recurring events processing...")
	if err := s.rollover.ProcessRecurringEvents(); err != nil {
		log.Printf("Recurring events pass aborted: %v", err)
	}
}
