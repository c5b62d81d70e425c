package postgres

import (
	"database/sql"
	"errors"
	"time"

	"lexibot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ReviewRepo implements repository.ReviewRepository
type ReviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new review record repository
func NewReviewRepo(db *sqlx.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

type reviewRow struct {
	Score         int          `db:"score"`
	IntervalDays  int          `db:"check_interval_days"`
	NextCheckDate sql.NullTime `db:"next_check_date"`
	Skipped       bool         `db:"is_skipped"`
}

func (r reviewRow) toDomain() *domain.ReviewRecord {
	rec := &domain.ReviewRecord{
		Score:        r.Score,
		IntervalDays: r.IntervalDays,
		Skipped:      r.Skipped,
	}
	if r.NextCheckDate.Valid {
		d := r.NextCheckDate.Time
		rec.NextCheckDate = &d
	}
	return rec
}

// Get returns the review record for (user, word), or nil when the word
// was never reviewed
func (r *ReviewRepo) Get(userID, wordID int64) (*domain.ReviewRecord, error) {
	query := `
		SELECT score, check_interval_days, next_check_date, is_skipped
		FROM review_records
		WHERE user_id = $1 AND word_id = $2
	`

	var row reviewRow
	err := r.db.Get(&row, query, userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toDomain(), nil
}

// Upsert writes the review record for (user, word)
func (r *ReviewRepo) Upsert(userID, wordID int64, rec domain.ReviewRecord) error {
	query := `
		INSERT INTO review_records (user_id, word_id, score, check_interval_days, next_check_date, is_skipped, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, word_id) DO UPDATE
		SET score = EXCLUDED.score,
			check_interval_days = EXCLUDED.check_interval_days,
			next_check_date = EXCLUDED.next_check_date,
			is_skipped = EXCLUDED.is_skipped,
			updated_at = NOW()
	`

	var due sql.NullTime
	if rec.NextCheckDate != nil {
		due = sql.NullTime{Time: *rec.NextCheckDate, Valid: true}
	}

	_, err := r.db.Exec(query, userID, wordID, rec.Score, rec.IntervalDays, due, rec.Skipped)
	return err
}

// SetSkipped flips the user exclusion flag without touching the schedule
func (r *ReviewRepo) SetSkipped(userID, wordID int64, skipped bool) error {
	query := `
		INSERT INTO review_records (user_id, word_id, score, check_interval_days, next_check_date, is_skipped, updated_at)
		VALUES ($1, $2, 0, 0, $3, $4, NOW())
		ON CONFLICT (user_id, word_id) DO UPDATE
		SET is_skipped = EXCLUDED.is_skipped,
			updated_at = NOW()
	`
	today := domain.StartOfDay(time.Now())
	_, err := r.db.Exec(query, userID, wordID, today, skipped)
	return err
}

// CountDue returns how many reviewed, non-skipped words are due today
func (r *ReviewRepo) CountDue(userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM review_records
		WHERE user_id = $1
			AND is_skipped = FALSE
			AND (next_check_date IS NULL OR next_check_date <= CURRENT_DATE)
	`

	var count int
	err := r.db.Get(&count, query, userID)
	return count, err
}

// UsersWithDueWords returns users having at least one due word
func (r *ReviewRepo) UsersWithDueWords() ([]int64, error) {
	query := `
		SELECT DISTINCT user_id
		FROM review_records
		WHERE is_skipped = FALSE
			AND (next_check_date IS NULL OR next_check_date <= CURRENT_DATE)
		ORDER BY user_id
	`

	var users []int64
	if err := r.db.Select(&users, query); err != nil {
		return nil, err
	}
	return users, nil
}
