package domain

import "time"

// Outcome is the scheduling signal produced by a learner action
type Outcome int

const (
	// OutcomeUnknown - learner explicitly reported not knowing the word
	OutcomeUnknown Outcome = iota
	// OutcomeKnown - learner reported knowing the word
	OutcomeKnown
	// OutcomeHintUsed - learner revealed the word or any hint before answering
	OutcomeHintUsed
)

// MaxIntervalDays is the ceiling of the doubling sequence 0,1,2,4,8,16,32
const MaxIntervalDays = 32

// ReviewRecord is the per-user-per-word review state.
// IntervalDays == 0 always implies Score == 0 and vice versa.
type ReviewRecord struct {
	Score         int // 0 = failed/not known, 1 = known
	IntervalDays  int
	NextCheckDate *time.Time // nil means due immediately
	Skipped       bool       // user-controlled exclusion, independent of scheduling
}

// Due reports whether the record is due for review on the given day.
// A nil record or a missing next check date is always due.
func (r *ReviewRecord) Due(day time.Time) bool {
	if r == nil || r.NextCheckDate == nil {
		return true
	}
	return !StartOfDay(*r.NextCheckDate).After(StartOfDay(day))
}

// StartOfDay truncates a timestamp to midnight, dates are compared
// at day granularity only
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextReview computes the next review record from the previous one and
// the outcome of the current review. Pure function; the caller persists
// the result.
//
// Rules:
//   - UNKNOWN or HINT_USED resets the word unconditionally: score 0,
//     interval 0, due today. Applying it twice yields the same record.
//   - KNOWN on a fresh or reset word starts a 1-day interval.
//   - KNOWN on a scheduled word doubles the interval (capped at 32) only
//     when the word was actually due; marking a word known before its due
//     date keeps the old interval so eager re-reviews cannot accelerate
//     the schedule.
func NextReview(prev *ReviewRecord, outcome Outcome, now time.Time) ReviewRecord {
	today := StartOfDay(now)

	next := ReviewRecord{}
	if prev != nil {
		next.Skipped = prev.Skipped
	}

	if outcome != OutcomeKnown {
		next.Score = 0
		next.IntervalDays = 0
		next.NextCheckDate = &today
		return next
	}

	interval := 1
	if prev != nil && prev.IntervalDays > 0 {
		if prev.Due(today) {
			interval = prev.IntervalDays * 2
			if interval > MaxIntervalDays {
				interval = MaxIntervalDays
			}
		} else {
			interval = prev.IntervalDays
		}
	}

	due := today.AddDate(0, 0, interval)
	next.Score = 1
	next.IntervalDays = interval
	next.NextCheckDate = &due
	return next
}
