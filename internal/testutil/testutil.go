package testutil

import (
	"time"

	"lexibot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test study word without a review record
func NewTestWord(id int64, number int, foreign, translation string) domain.StudyWord {
	return domain.StudyWord{
		Word: domain.Word{
			ID:          id,
			LanguageID:  1,
			Number:      number,
			Foreign:     foreign,
			Translation: translation,
		},
	}
}

// NewTestReview creates a test review record due on the given date
func NewTestReview(score, intervalDays int, due time.Time) *domain.ReviewRecord {
	d := domain.StartOfDay(due)
	return &domain.ReviewRecord{
		Score:         score,
		IntervalDays:  intervalDays,
		NextCheckDate: &d,
	}
}

// DefaultFilters returns the filter snapshot used across tests
func DefaultFilters() domain.StudyFilters {
	return domain.StudyFilters{
		StartFrom: 1,
		OnlyDue:   true,
		PageSize:  2,
	}
}
