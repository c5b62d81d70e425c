package postgres

import (
	"fmt"
	"testing"
	"time"

	"lexibot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var fetchColumns = []string{
	"id", "language_id", "number", "foreign_word", "translation", "transcription",
	"score", "check_interval_days", "next_check_date", "is_skipped",
}

func defaultTestFilters() domain.StudyFilters {
	return domain.StudyFilters{StartFrom: 1, OnlyDue: true, PageSize: 2}
}

func TestWordRepo_FetchBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(fetchColumns).
		AddRow(11, 1, 1, "hond", "собака", "hɔnt", nil, nil, nil, nil).
		AddRow(22, 1, 2, "kat", "кошка", nil, 1, 2, due, false)

	mock.ExpectQuery("SELECT w.id, w.language_id, w.number").
		WithArgs(int64(123), int64(1), 0, false, true, 2).
		WillReturnRows(rows)

	words, token, err := repo.FetchBatch(123, 1, defaultTestFilters(), "", 2)

	assert.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "2", token)

	// never-reviewed word carries no review snapshot
	assert.Equal(t, int64(11), words[0].ID)
	assert.Equal(t, "hɔnt", words[0].Transcription)
	assert.Nil(t, words[0].Review)

	// reviewed word carries the record as of fetch time
	assert.Equal(t, int64(22), words[1].ID)
	assert.NotNil(t, words[1].Review)
	assert.Equal(t, 1, words[1].Review.Score)
	assert.Equal(t, 2, words[1].Review.IntervalDays)
	assert.Equal(t, due, *words[1].Review.NextCheckDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_FetchBatch_CursorAdvances(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	rows := sqlmock.NewRows(fetchColumns).
		AddRow(33, 1, 5, "vis", "рыба", nil, nil, nil, nil, nil)

	// the token from the previous page replaces the start-from offset
	mock.ExpectQuery("SELECT w.id, w.language_id, w.number").
		WithArgs(int64(123), int64(1), 2, false, true, 2).
		WillReturnRows(rows)

	words, token, err := repo.FetchBatch(123, 1, defaultTestFilters(), "2", 2)

	assert.NoError(t, err)
	assert.Len(t, words, 1)
	assert.Equal(t, "5", token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_FetchBatch_StartFrom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	filters := defaultTestFilters()
	filters.StartFrom = 100

	mock.ExpectQuery("SELECT w.id, w.language_id, w.number").
		WithArgs(int64(123), int64(1), 99, false, true, 2).
		WillReturnRows(sqlmock.NewRows(fetchColumns))

	_, _, err := repo.FetchBatch(123, 1, filters, "", 2)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_FetchBatch_Exhausted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT w.id, w.language_id, w.number").
		WithArgs(int64(123), int64(1), 7, false, true, 2).
		WillReturnRows(sqlmock.NewRows(fetchColumns))

	words, token, err := repo.FetchBatch(123, 1, defaultTestFilters(), "7", 2)

	// empty result is the exhaustion signal, not an error; token is unchanged
	assert.NoError(t, err)
	assert.Empty(t, words)
	assert.Equal(t, "7", token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_FetchBatch_InvalidCursor(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewWordRepo(db)

	_, _, err := repo.FetchBatch(123, 1, defaultTestFilters(), "not-a-number", 2)

	assert.Error(t, err)
}

func TestWordRepo_FetchBatch_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT w.id, w.language_id, w.number").
		WillReturnError(fmt.Errorf("connection refused"))

	_, _, err := repo.FetchBatch(123, 1, defaultTestFilters(), "", 2)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
