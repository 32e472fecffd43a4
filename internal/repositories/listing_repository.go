package repositories

import "unimarket/internal/models"

// ListingRepository defines the interface for listing data access.
type ListingRepository interface {
	Create(listing *models.Listing) error
	// Browse returns available listings joined with seller identity, newest
	// first. Both filters are optional: search matches title or description
	// case-insensitively, category matches exactly.
	Browse(search, category string) ([]models.ListingSummary, error)
	// Categories returns the distinct categories among available listings.
	Categories() ([]string, error)
	GetByID(id string) (*models.ListingSummary, error)
	GetBySeller(sellerID string) ([]models.Listing, error)
	MarkSold(id string) error
}
