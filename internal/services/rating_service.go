package services

import (
	"errors"
	"fmt"

	"unimarket/internal/models"
	"unimarket/internal/repositories"
)

// RatingService handles business logic for seller ratings and reputation.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	userRepo   repositories.UserRepository
	events     EventPublisher
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, userRepo repositories.UserRepository, events EventPublisher) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		events:     events,
	}
}

// Submit records one rating from the principal for a seller. A reviewer can
// rate a given seller only once; the unique index catches submissions that
// race past the existence check.
func (s *RatingService) Submit(principal models.Principal, sellerID string, rating int, reviewText string) (*models.Rating, error) {
	if _, err := s.userRepo.GetByID(sellerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("seller %s: %w", sellerID, ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.ratingRepo.ExistsForPair(principal.ID, sellerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("seller %s: %w", sellerID, ErrAlreadyRated)
	}

	row := &models.Rating{
		ReviewerID: principal.ID,
		SellerID:   sellerID,
		Rating:     rating,
		ReviewText: reviewText,
	}
	if err := s.ratingRepo.Create(row); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("seller %s: %w", sellerID, ErrAlreadyRated)
		}
		return nil, err
	}

	publishEvent(s.events, "rating.submitted", map[string]interface{}{
		"rating_id":   row.ID,
		"reviewer_id": row.ReviewerID,
		"seller_id":   row.SellerID,
		"rating":      row.Rating,
	})
	return row, nil
}

// Reputation returns a seller's average rating (rounded to one decimal, 0
// when unrated) and rating count.
func (s *RatingService) Reputation(sellerID string) (models.Reputation, error) {
	avg, count, err := s.ratingRepo.Reputation(sellerID)
	if err != nil {
		return models.Reputation{}, err
	}
	return models.Reputation{
		AvgRating:   roundRating(avg),
		RatingCount: count,
	}, nil
}
