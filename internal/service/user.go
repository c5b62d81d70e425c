package service

import (
	"lexibot/internal/repository"
)

// UserService handles user registration and language selection
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureUserExists creates user record if doesn't exist
func (s *UserService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}

// SetLanguage stores the user's active study language
func (s *UserService) SetLanguage(userID, languageID int64) error {
	return s.userRepo.SetLanguage(userID, languageID)
}

// GetLanguage returns the user's active study language, 0 when not chosen
func (s *UserService) GetLanguage(userID int64) (int64, error) {
	return s.userRepo.GetLanguage(userID)
}
