package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lexibot/internal/domain"
	"lexibot/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoSession is returned when an action arrives for a user without an
// active study session
var ErrNoSession = errors.New("no active study session")

// ActionKind identifies a learner action within a study session
type ActionKind string

const (
	// ActionKnow - learner self-reports knowing the word
	ActionKnow ActionKind = "know"
	// ActionReveal - learner asks to see the word or a hint
	ActionReveal ActionKind = "reveal"
	// ActionRetract - learner takes back a "know" before moving on
	ActionRetract ActionKind = "retract"
	// ActionNext - learner advances to the next word
	ActionNext ActionKind = "next"
)

// Action is one learner action applied to the session
type Action struct {
	Kind ActionKind
	Hint domain.HintType // for ActionReveal; empty means showing the word itself
}

// SessionView is the snapshot handed to the transport layer after every
// session operation
type SessionView struct {
	SessionID     string
	Phase         domain.Phase
	Word          *domain.StudyWord // nil once the session is completed
	Counters      domain.SessionCounters
	WordShown     bool
	HintsRevealed []domain.HintType
	// Rejected is set when the action referred to a word or session that
	// no longer matches current state; the view re-presents the current
	// word and nothing was applied
	Rejected bool
}

// studySession is the authoritative state of one learner's active session
type studySession struct {
	id            string
	userID        int64
	languageID    int64
	filters       domain.StudyFilters
	phase         domain.Phase
	batch         []domain.StudyWord
	cursor        int
	wordShown     bool
	hintsRevealed map[domain.HintType]bool
	counters      domain.SessionCounters
	cursorToken   string
}

func (s *studySession) current() *domain.StudyWord {
	if s.phase == domain.PhaseCompleted || s.cursor >= len(s.batch) {
		return nil
	}
	return &s.batch[s.cursor]
}

// penalized reports whether the current word already took the hint
// penalty; further reveals must not touch the schedule again
func (s *studySession) penalized() bool {
	return s.wordShown || len(s.hintsRevealed) > 0
}

func (s *studySession) resetWordFlags() {
	s.wordShown = false
	s.hintsRevealed = make(map[domain.HintType]bool)
}

func (s *studySession) view(rejected bool) SessionView {
	v := SessionView{
		SessionID: s.id,
		Phase:     s.phase,
		Counters:  s.counters,
		WordShown: s.wordShown,
		Rejected:  rejected,
	}
	if w := s.current(); w != nil {
		word := *w
		v.Word = &word
	}
	for hint := range s.hintsRevealed {
		v.HintsRevealed = append(v.HintsRevealed, hint)
	}
	return v
}

// StudyService runs study sessions: it keeps per-learner session state,
// enforces the phase transitions and feeds every self-report or hint
// reveal through the interval scheduler into the review store.
type StudyService struct {
	words    repository.WordSource
	reviews  repository.ReviewRepository
	defaults domain.StudyFilters
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*studySession
}

// NewStudyService creates a new study service
func NewStudyService(
	words repository.WordSource,
	reviews repository.ReviewRepository,
	defaults domain.StudyFilters,
	logger *zap.Logger,
) *StudyService {
	return &StudyService{
		words:    words,
		reviews:  reviews,
		defaults: defaults,
		logger:   logger,
		sessions: make(map[int64]*studySession),
	}
}

// DefaultFilters returns the configured filter defaults
func (s *StudyService) DefaultFilters() domain.StudyFilters {
	return s.defaults
}

// resolveFilters produces the immutable settings snapshot used for the
// whole session
func (s *StudyService) resolveFilters(f domain.StudyFilters) domain.StudyFilters {
	if f.PageSize <= 0 {
		f.PageSize = s.defaults.PageSize
	}
	if f.StartFrom <= 0 {
		f.StartFrom = s.defaults.StartFrom
	}
	return f
}

// StartSession begins a fresh session for the user, replacing any
// previous one. Counters start at zero and the batch is fetched from the
// beginning of the filtered word list.
func (s *StudyService) StartSession(userID, languageID int64, filters domain.StudyFilters) (SessionView, error) {
	f := s.resolveFilters(filters)

	words, token, err := s.words.FetchBatch(userID, languageID, f, "", f.PageSize)
	if err != nil {
		return SessionView{}, fmt.Errorf("fetch first batch: %w", err)
	}

	sess := &studySession{
		id:            uuid.NewString(),
		userID:        userID,
		languageID:    languageID,
		filters:       f,
		hintsRevealed: make(map[domain.HintType]bool),
		cursorToken:   token,
	}

	if len(words) == 0 {
		sess.phase = domain.PhaseCompleted
	} else {
		sess.phase = domain.PhaseStudying
		sess.batch = words
		sess.counters.BatchesLoaded = 1
	}

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	s.logger.Info("Study session started",
		zap.Int64("user_id", userID),
		zap.Int64("language_id", languageID),
		zap.String("session_id", sess.id),
		zap.Int("batch_size", len(words)),
	)

	return sess.view(false), nil
}

// CurrentView returns the view of the user's active session
func (s *StudyService) CurrentView(userID int64) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return SessionView{}, ErrNoSession
	}
	return sess.view(false), nil
}

// CancelSession discards the user's session. Review records already
// written stay as they are.
func (s *StudyService) CancelSession(userID int64) {
	s.mu.Lock()
	_, existed := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if existed {
		s.logger.Info("Study session cancelled", zap.Int64("user_id", userID))
	}
}

// SkipWord flips the exclusion flag on a word; the schedule is untouched
func (s *StudyService) SkipWord(userID, wordID int64) error {
	return s.reviews.SetSkipped(userID, wordID, true)
}

// Apply feeds one learner action into the session state machine. Stale
// actions (wrong session, wrong word, trigger not valid in the current
// phase) are rejected as no-ops and reported via SessionView.Rejected.
// Store failures leave the session unchanged so the action can be
// retried.
func (s *StudyService) Apply(userID int64, sessionID string, wordID int64, action Action) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return SessionView{}, ErrNoSession
	}

	if sess.id != sessionID {
		return s.reject(sess, wordID, action, "session mismatch"), nil
	}

	cur := sess.current()
	if cur == nil || cur.ID != wordID {
		return s.reject(sess, wordID, action, "word mismatch"), nil
	}

	switch action.Kind {
	case ActionKnow:
		if sess.phase != domain.PhaseStudying {
			return s.reject(sess, wordID, action, "not studying"), nil
		}
		// applied optimistically; ActionRetract can still overwrite it
		if err := s.applyOutcome(sess, cur.ID, domain.OutcomeKnown); err != nil {
			return sess.view(false), err
		}
		sess.phase = domain.PhaseConfirming

	case ActionReveal:
		if sess.phase != domain.PhaseStudying && sess.phase != domain.PhaseViewingDetails {
			return s.reject(sess, wordID, action, "not studying"), nil
		}
		if !sess.penalized() {
			if err := s.applyOutcome(sess, cur.ID, domain.OutcomeHintUsed); err != nil {
				return sess.view(false), err
			}
		}
		if action.Hint == "" || action.Hint == domain.HintWord {
			sess.wordShown = true
			sess.hintsRevealed[domain.HintWord] = true
		} else {
			sess.hintsRevealed[action.Hint] = true
		}
		sess.phase = domain.PhaseViewingDetails

	case ActionRetract:
		if sess.phase != domain.PhaseConfirming {
			return s.reject(sess, wordID, action, "nothing to retract"), nil
		}
		if err := s.applyOutcome(sess, cur.ID, domain.OutcomeUnknown); err != nil {
			return sess.view(false), err
		}
		sess.wordShown = true
		sess.phase = domain.PhaseViewingDetails

	case ActionNext:
		if sess.phase != domain.PhaseConfirming && sess.phase != domain.PhaseViewingDetails {
			return s.reject(sess, wordID, action, "word not resolved yet"), nil
		}
		if err := s.advance(sess); err != nil {
			return sess.view(false), err
		}

	default:
		return s.reject(sess, wordID, action, "unknown action"), nil
	}

	return sess.view(false), nil
}

// applyOutcome runs the interval scheduler against the stored record and
// persists the result. The session itself is not mutated here.
func (s *StudyService) applyOutcome(sess *studySession, wordID int64, outcome domain.Outcome) error {
	prev, err := s.reviews.Get(sess.userID, wordID)
	if err != nil {
		return fmt.Errorf("load review record: %w", err)
	}

	next := domain.NextReview(prev, outcome, time.Now())
	if err := s.reviews.Upsert(sess.userID, wordID, next); err != nil {
		return fmt.Errorf("save review record: %w", err)
	}
	return nil
}

// advance moves past the current word, refilling the batch when it is
// drained. The next batch is fetched before any state is mutated so a
// failed fetch keeps the session retry-safe.
func (s *StudyService) advance(sess *studySession) error {
	if sess.cursor+1 >= len(sess.batch) {
		words, token, err := s.words.FetchBatch(
			sess.userID, sess.languageID, sess.filters, sess.cursorToken, sess.filters.PageSize,
		)
		if err != nil {
			return fmt.Errorf("fetch next batch: %w", err)
		}

		sess.counters.WordsProcessed++
		sess.resetWordFlags()
		sess.cursorToken = token
		sess.cursor = 0

		if len(words) == 0 {
			sess.batch = nil
			sess.phase = domain.PhaseCompleted
			s.logger.Info("Study session completed",
				zap.Int64("user_id", sess.userID),
				zap.Int("words_processed", sess.counters.WordsProcessed),
				zap.Int("batches_loaded", sess.counters.BatchesLoaded),
			)
			return nil
		}

		sess.batch = words
		sess.counters.BatchesLoaded++
		sess.phase = domain.PhaseStudying
		return nil
	}

	sess.counters.WordsProcessed++
	sess.resetWordFlags()
	sess.cursor++
	sess.phase = domain.PhaseStudying
	return nil
}

func (s *StudyService) reject(sess *studySession, wordID int64, action Action, reason string) SessionView {
	s.logger.Warn("Stale study action rejected",
		zap.Int64("user_id", sess.userID),
		zap.Int64("word_id", wordID),
		zap.String("action", string(action.Kind)),
		zap.String("phase", string(sess.phase)),
		zap.String("reason", reason),
	)
	return sess.view(true)
}
