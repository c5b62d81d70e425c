package service

import (
	"fmt"

	"lexibot/internal/repository"

	"go.uber.org/zap"
)

// Notifier delivers a message to a user, implemented by the bot layer
type Notifier interface {
	Notify(userID int64, text string) error
}

// ReminderService tells users when they have words due for review
type ReminderService struct {
	reviews  repository.ReviewRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(reviews repository.ReviewRepository, notifier Notifier, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		reviews:  reviews,
		notifier: notifier,
		logger:   logger,
	}
}

// SendDueReminders notifies every user having at least one due word.
// Per-user failures are logged and do not stop the fan-out.
func (s *ReminderService) SendDueReminders() error {
	users, err := s.reviews.UsersWithDueWords()
	if err != nil {
		return fmt.Errorf("list users with due words: %w", err)
	}

	s.logger.Info("Sending due-word reminders", zap.Int("users", len(users)))

	for _, userID := range users {
		count, err := s.reviews.CountDue(userID)
		if err != nil {
			s.logger.Error("Failed to count due words",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		if count == 0 {
			continue
		}

		text := fmt.Sprintf("⏰ Пора повторить слова! Сегодня ждут повторения: %d. Отправь /study, чтобы начать.", count)
		if err := s.notifier.Notify(userID, text); err != nil {
			s.logger.Error("Failed to send reminder",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return nil
}
