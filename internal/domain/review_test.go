package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time {
	d := StartOfDay(t)
	return &d
}

func TestNextReview_FirstKnown(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	rec := NextReview(nil, OutcomeKnown, now)

	assert.Equal(t, 1, rec.Score)
	assert.Equal(t, 1, rec.IntervalDays)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), *rec.NextCheckDate)
}

func TestNextReview_Known(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	today := StartOfDay(now)

	tests := []struct {
		name             string
		prev             *ReviewRecord
		expectedInterval int
	}{
		{
			name:             "reset word starts over at one day",
			prev:             &ReviewRecord{Score: 0, IntervalDays: 0, NextCheckDate: datePtr(today)},
			expectedInterval: 1,
		},
		{
			name:             "due today doubles",
			prev:             &ReviewRecord{Score: 1, IntervalDays: 2, NextCheckDate: datePtr(today)},
			expectedInterval: 4,
		},
		{
			name:             "overdue doubles",
			prev:             &ReviewRecord{Score: 1, IntervalDays: 16, NextCheckDate: datePtr(today.AddDate(0, 0, -1))},
			expectedInterval: 32,
		},
		{
			name:             "not yet due keeps old interval",
			prev:             &ReviewRecord{Score: 1, IntervalDays: 4, NextCheckDate: datePtr(today.AddDate(0, 0, 3))},
			expectedInterval: 4,
		},
		{
			name:             "ceiling is not exceeded",
			prev:             &ReviewRecord{Score: 1, IntervalDays: 32, NextCheckDate: datePtr(today)},
			expectedInterval: 32,
		},
		{
			name:             "missing due date treated as due now",
			prev:             &ReviewRecord{Score: 1, IntervalDays: 8, NextCheckDate: nil},
			expectedInterval: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NextReview(tt.prev, OutcomeKnown, now)

			assert.Equal(t, 1, rec.Score)
			assert.Equal(t, tt.expectedInterval, rec.IntervalDays)
			assert.Equal(t, today.AddDate(0, 0, tt.expectedInterval), *rec.NextCheckDate)
		})
	}
}

func TestNextReview_Reset(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	today := StartOfDay(now)
	prev := &ReviewRecord{Score: 1, IntervalDays: 16, NextCheckDate: datePtr(today.AddDate(0, 0, 10))}

	for _, outcome := range []Outcome{OutcomeUnknown, OutcomeHintUsed} {
		rec := NextReview(prev, outcome, now)

		assert.Equal(t, 0, rec.Score)
		assert.Equal(t, 0, rec.IntervalDays)
		assert.Equal(t, today, *rec.NextCheckDate)

		// applying the reset twice yields the same record
		again := NextReview(&rec, outcome, now)
		assert.Equal(t, rec, again)
	}
}

func TestNextReview_IntervalLadder(t *testing.T) {
	// repeated on-time reviews must walk exactly 1,2,4,8,16,32,32,...
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	expected := []int{1, 2, 4, 8, 16, 32, 32}

	var prev *ReviewRecord
	for i, want := range expected {
		rec := NextReview(prev, OutcomeKnown, now)
		assert.Equal(t, want, rec.IntervalDays, "step %d", i)
		now = *rec.NextCheckDate // review again exactly on the due date
		prev = &rec
	}
}

func TestNextReview_PreservesSkipped(t *testing.T) {
	now := time.Now()
	prev := &ReviewRecord{Score: 1, IntervalDays: 2, NextCheckDate: datePtr(now), Skipped: true}

	assert.True(t, NextReview(prev, OutcomeKnown, now).Skipped)
	assert.True(t, NextReview(prev, OutcomeUnknown, now).Skipped)
	assert.False(t, NextReview(nil, OutcomeKnown, now).Skipped)
}

func TestReviewRecord_Due(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)

	var missing *ReviewRecord
	assert.True(t, missing.Due(now))
	assert.True(t, (&ReviewRecord{}).Due(now))
	assert.True(t, (&ReviewRecord{NextCheckDate: datePtr(now)}).Due(now))
	assert.True(t, (&ReviewRecord{NextCheckDate: datePtr(now.AddDate(0, 0, -3))}).Due(now))
	assert.False(t, (&ReviewRecord{NextCheckDate: datePtr(now.AddDate(0, 0, 1))}).Due(now))
}
