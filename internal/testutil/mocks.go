package testutil

import (
	"lexibot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetLanguage(userID, languageID int64) error {
	args := m.Called(userID, languageID)
	return args.Error(0)
}

func (m *MockUserRepository) GetLanguage(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository is a mock for ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Get(userID, wordID int64) (*domain.ReviewRecord, error) {
	args := m.Called(userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRecord), args.Error(1)
}

func (m *MockReviewRepository) Upsert(userID, wordID int64, rec domain.ReviewRecord) error {
	args := m.Called(userID, wordID, rec)
	return args.Error(0)
}

func (m *MockReviewRepository) SetSkipped(userID, wordID int64, skipped bool) error {
	args := m.Called(userID, wordID, skipped)
	return args.Error(0)
}

func (m *MockReviewRepository) CountDue(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) UsersWithDueWords() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockWordSource is a mock for WordSource
type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) FetchBatch(userID, languageID int64, filters domain.StudyFilters, cursor string, size int) ([]domain.StudyWord, string, error) {
	args := m.Called(userID, languageID, filters, cursor, size)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.StudyWord), args.String(1), args.Error(2)
}

// MockNotifier is a mock for Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(userID int64, text string) error {
	args := m.Called(userID, text)
	return args.Error(0)
}
