package services

import (
	"errors"
	"fmt"
	"io"
	"math"

	"unimarket/internal/models"
	"unimarket/internal/repositories"
)

// ImageStore is the slice of the upload store the listing service needs.
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// ListingService handles business logic for the listing catalog.
type ListingService struct {
	listingRepo repositories.ListingRepository
	ratingRepo  repositories.RatingRepository
	images      ImageStore
	events      EventPublisher
}

// NewListingService creates a new ListingService.
func NewListingService(listingRepo repositories.ListingRepository, ratingRepo repositories.RatingRepository, images ImageStore, events EventPublisher) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		ratingRepo:  ratingRepo,
		images:      images,
		events:      events,
	}
}

// Browse returns available listings matching the optional filters, plus the
// distinct categories currently on offer for filter population.
func (s *ListingService) Browse(search, category string) ([]models.ListingSummary, []string, error) {
	listings, err := s.listingRepo.Browse(search, category)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.listingRepo.Categories()
	if err != nil {
		return nil, nil, err
	}
	return listings, categories, nil
}

// Create stores the optional image and inserts the listing for the principal.
// The returned listing carries its generated ID and image key.
func (s *ListingService) Create(principal models.Principal, listing *models.Listing, imageName string, image io.Reader) (*models.Listing, error) {
	if image != nil {
		key, err := s.images.Save(imageName, image)
		if err != nil {
			return nil, fmt.Errorf("failed to store listing image: %w", err)
		}
		listing.ImagePath = key
	}

	listing.SellerID = principal.ID
	listing.Status = models.StatusAvailable
	if err := s.listingRepo.Create(listing); err != nil {
		return nil, err
	}

	publishEvent(s.events, "listing.created", map[string]interface{}{
		"listing_id": listing.ID,
		"seller_id":  listing.SellerID,
		"title":      listing.Title,
		"price":      listing.Price,
		"category":   listing.Category,
	})
	return listing, nil
}

// Detail returns one listing with its seller's reputation rollup.
func (s *ListingService) Detail(id string) (*models.ListingDetail, error) {
	listing, err := s.listingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	avg, count, err := s.ratingRepo.Reputation(listing.SellerID)
	if err != nil {
		return nil, err
	}

	return &models.ListingDetail{
		ListingSummary: *listing,
		AvgRating:      roundRating(avg),
		RatingCount:    count,
	}, nil
}

// MarkSold transitions a listing to Sold on behalf of its owner. Marking an
// already sold listing again succeeds silently.
func (s *ListingService) MarkSold(id string, principal models.Principal) error {
	listing, err := s.listingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("listing %s: %w", id, ErrNotFound)
		}
		return err
	}
	if listing.SellerID != principal.ID {
		return fmt.Errorf("listing %s: %w", id, ErrNotOwner)
	}

	if err := s.listingRepo.MarkSold(id); err != nil {
		return err
	}

	publishEvent(s.events, "listing.sold", map[string]interface{}{
		"listing_id": id,
		"seller_id":  listing.SellerID,
	})
	return nil
}

// roundRating rounds an average rating to one decimal place.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
