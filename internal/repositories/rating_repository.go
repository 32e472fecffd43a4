package repositories

import "unimarket/internal/models"

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	// Create inserts a rating. A second rating for the same
	// (reviewer, seller) pair fails with ErrDuplicate via the unique index.
	Create(rating *models.Rating) error
	ExistsForPair(reviewerID, sellerID string) (bool, error)
	// Reputation returns the raw average (0 when unrated) and count of
	// ratings received by a seller.
	Reputation(sellerID string) (float64, int64, error)
	// RecentBySeller returns the newest ratings received, with reviewer names.
	RecentBySeller(sellerID string, limit int) ([]models.RatingWithReviewer, error)
}
