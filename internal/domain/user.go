package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	LanguageID int64 // active study language, 0 when not chosen yet
	CreatedAt  time.Time
}
