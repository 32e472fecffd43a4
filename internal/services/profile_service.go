package services

import (
	"unimarket/internal/models"
	"unimarket/internal/repositories"
)

// recentRatingsLimit bounds how many received ratings the profile shows.
const recentRatingsLimit = 5

// ProfileView composes everything the profile page needs in one response.
type ProfileView struct {
	User          models.Principal            `json:"user"`
	Listings      []models.Listing            `json:"listings"`
	Reputation    models.Reputation           `json:"reputation"`
	RecentRatings []models.RatingWithReviewer `json:"recent_ratings"`
}

// ProfileService composes a user's listings, reputation, and recent ratings.
type ProfileService struct {
	listingRepo repositories.ListingRepository
	ratingRepo  repositories.RatingRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(listingRepo repositories.ListingRepository, ratingRepo repositories.RatingRepository) *ProfileService {
	return &ProfileService{
		listingRepo: listingRepo,
		ratingRepo:  ratingRepo,
	}
}

// Profile returns the principal's own listings (newest first), reputation
// rollup, and most recently received ratings.
func (s *ProfileService) Profile(principal models.Principal) (*ProfileView, error) {
	listings, err := s.listingRepo.GetBySeller(principal.ID)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.ratingRepo.Reputation(principal.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.ratingRepo.RecentBySeller(principal.ID, recentRatingsLimit)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User:     principal,
		Listings: listings,
		Reputation: models.Reputation{
			AvgRating:   roundRating(avg),
			RatingCount: count,
		},
		RecentRatings: recent,
	}, nil
}
