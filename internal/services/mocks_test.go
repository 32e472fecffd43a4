package services_test

import (
	"errors"
	"io"

	"unimarket/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockListingRepository is a mock implementation of repositories.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(listing *models.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) Browse(search, category string) ([]models.ListingSummary, error) {
	args := m.Called(search, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ListingSummary), args.Error(1)
}

func (m *MockListingRepository) Categories() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingRepository) GetByID(id string) (*models.ListingSummary, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingSummary), args.Error(1)
}

func (m *MockListingRepository) GetBySeller(sellerID string) ([]models.Listing, error) {
	args := m.Called(sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingRepository) MarkSold(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) Conversations(userID string) ([]models.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockMessageRepository) Thread(userID, otherID string) ([]models.ThreadMessage, error) {
	args := m.Called(userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ThreadMessage), args.Error(1)
}

// MockRatingRepository is a mock implementation of repositories.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) ExistsForPair(reviewerID, sellerID string) (bool, error) {
	args := m.Called(reviewerID, sellerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) Reputation(sellerID string) (float64, int64, error) {
	args := m.Called(sellerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) RecentBySeller(sellerID string, limit int) ([]models.RatingWithReviewer, error) {
	args := m.Called(sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RatingWithReviewer), args.Error(1)
}

// MockEventPublisher records published marketplace events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(kind string, body []byte) error {
	args := m.Called(kind, body)
	return args.Error(0)
}

// fakeImageStore is a stub image store that records the last saved name.
type fakeImageStore struct {
	savedName string
	key       string
	fail      bool
}

func (f *fakeImageStore) Save(filename string, r io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("store failure")
	}
	f.savedName = filename
	if f.key == "" {
		f.key = "stored-key.png"
	}
	return f.key, nil
}
