package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates user record if doesn't exist
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// SetLanguage stores the user's active study language
func (r *UserRepo) SetLanguage(userID, languageID int64) error {
	query := `
		UPDATE users
		SET language_id = $2
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, languageID)
	return err
}

// GetLanguage returns the user's active study language, 0 when not chosen
func (r *UserRepo) GetLanguage(userID int64) (int64, error) {
	query := `
		SELECT COALESCE(language_id, 0)
		FROM users
		WHERE user_id = $1
	`

	var languageID int64
	err := r.db.Get(&languageID, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return languageID, err
}
