package postgres

import (
	"database/sql"
	"fmt"
	"strconv"

	"lexibot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// WordRepo implements repository.WordSource over the words table joined
// with the caller's review records
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word source repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

type studyWordRow struct {
	ID            int64          `db:"id"`
	LanguageID    int64          `db:"language_id"`
	Number        int            `db:"number"`
	Foreign       string         `db:"foreign_word"`
	Translation   string         `db:"translation"`
	Transcription sql.NullString `db:"transcription"`
	Score         sql.NullInt64  `db:"score"`
	IntervalDays  sql.NullInt64  `db:"check_interval_days"`
	NextCheckDate sql.NullTime   `db:"next_check_date"`
	Skipped       sql.NullBool   `db:"is_skipped"`
}

func (r studyWordRow) toDomain() domain.StudyWord {
	w := domain.StudyWord{
		Word: domain.Word{
			ID:            r.ID,
			LanguageID:    r.LanguageID,
			Number:        r.Number,
			Foreign:       r.Foreign,
			Translation:   r.Translation,
			Transcription: r.Transcription.String,
		},
	}
	// a review row exists only when the word was reviewed at least once
	if r.Score.Valid {
		rec := &domain.ReviewRecord{
			Score:        int(r.Score.Int64),
			IntervalDays: int(r.IntervalDays.Int64),
			Skipped:      r.Skipped.Bool,
		}
		if r.NextCheckDate.Valid {
			d := r.NextCheckDate.Time
			rec.NextCheckDate = &d
		}
		w.Review = rec
	}
	return w
}

// FetchBatch returns the next page of eligible words ordered by word
// number, using keyset pagination. The cursor token is the last word
// number of the previous page; an empty token starts at filters.StartFrom.
// An empty result means no more eligible words exist.
func (r *WordRepo) FetchBatch(userID, languageID int64, filters domain.StudyFilters, cursor string, size int) ([]domain.StudyWord, string, error) {
	after := filters.StartFrom - 1
	if after < 0 {
		after = 0
	}
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid batch cursor %q: %w", cursor, err)
		}
		after = n
	}

	query := `
		SELECT w.id, w.language_id, w.number, w.foreign_word, w.translation, w.transcription,
			r.score, r.check_interval_days, r.next_check_date, r.is_skipped
		FROM words w
		LEFT JOIN review_records r ON r.word_id = w.id AND r.user_id = $1
		WHERE w.language_id = $2
			AND w.number > $3
			AND ($4 OR COALESCE(r.is_skipped, FALSE) = FALSE)
			AND ($5 = FALSE OR r.next_check_date IS NULL OR r.next_check_date <= CURRENT_DATE)
		ORDER BY w.number
		LIMIT $6
	`

	var rows []studyWordRow
	err := r.db.Select(&rows, query, userID, languageID, after, filters.IncludeSkipped, filters.OnlyDue, size)
	if err != nil {
		return nil, "", err
	}

	if len(rows) == 0 {
		return nil, cursor, nil
	}

	words := make([]domain.StudyWord, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.toDomain())
	}

	next := strconv.Itoa(rows[len(rows)-1].Number)
	return words, next, nil
}
