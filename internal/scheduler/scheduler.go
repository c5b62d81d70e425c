package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the daily reminder job
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    *zap.Logger
}

// Reminder is the job the scheduler triggers once a day
type Reminder interface {
	SendDueReminders() error
}

// New creates a scheduler firing at the given local time, e.g. "09:00"
func New(reminder Reminder, at string, logger *zap.Logger) (*Scheduler, error) {
	s := gocron.NewScheduler(time.Local)

	_, err := s.Every(1).Day().At(at).Do(func() {
		if err := reminder.SendDueReminders(); err != nil {
			logger.Error("Reminder job failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	s.logger.Info("Reminder scheduler started")
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
