package domain

// Phase is the current point of the per-word interaction cycle
type Phase string

const (
	// PhaseStudying - word presented in translation-only form
	PhaseStudying Phase = "studying"
	// PhaseViewingDetails - learner revealed the word without self-reporting
	PhaseViewingDetails Phase = "viewing_details"
	// PhaseConfirming - learner pressed "I know it" and may still retract
	PhaseConfirming Phase = "confirming_knowledge"
	// PhaseCompleted - terminal, no more eligible words under current filters
	PhaseCompleted Phase = "completed"
)

// StudyFilters is the immutable settings snapshot resolved once per
// session start and consumed by the batch loader.
type StudyFilters struct {
	StartFrom      int  // first word ordinal to study, 1-based
	IncludeSkipped bool // present words the user marked as skipped
	OnlyDue        bool // restrict to words due today or never reviewed
	PageSize       int
}

// SessionCounters are monotonically increasing within one session run
type SessionCounters struct {
	WordsProcessed int
	BatchesLoaded  int
}
