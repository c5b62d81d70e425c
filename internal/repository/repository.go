package repository

import (
	"lexibot/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUserExists(userID int64) error
	SetLanguage(userID, languageID int64) error
	GetLanguage(userID int64) (int64, error)
}

// ReviewRepository is the review-record store keyed by (user, word).
// Get returns (nil, nil) when no record exists - absence means
// first-ever review and is distinct from a zeroed record.
type ReviewRepository interface {
	Get(userID, wordID int64) (*domain.ReviewRecord, error)
	Upsert(userID, wordID int64, rec domain.ReviewRecord) error
	SetSkipped(userID, wordID int64, skipped bool) error
	CountDue(userID int64) (int, error)
	UsersWithDueWords() ([]int64, error)
}

// WordSource provides paged word batches for a study session. An empty
// result signals exhaustion. Fetches are deterministic for a fixed
// cursor token; tokens only advance forward.
type WordSource interface {
	FetchBatch(userID, languageID int64, filters domain.StudyFilters, cursor string, size int) ([]domain.StudyWord, string, error)
}
