package repositories

import (
	"fmt"
	"strings"

	"unimarket/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMListingRepository is a GORM implementation of ListingRepository.
type GORMListingRepository struct {
	db *gorm.DB
}

// NewGORMListingRepository creates a new instance of GORMListingRepository.
func NewGORMListingRepository(db *gorm.DB) *GORMListingRepository {
	return &GORMListingRepository{
		db: db,
	}
}

// withSeller is the base query for listing rows joined with seller identity.
func (r *GORMListingRepository) withSeller() *gorm.DB {
	return r.db.Table("listings").
		Select("listings.id, listings.title, listings.description, listings.price, " +
			"listings.category, listings.image_path, listings.seller_id, listings.status, " +
			"users.name AS seller_name, users.email AS seller_email").
		Joins("JOIN users ON users.id = listings.seller_id").
		Where("listings.deleted_at IS NULL")
}

// Create creates a new listing in the database.
func (r *GORMListingRepository) Create(listing *models.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.Status == "" {
		listing.Status = models.StatusAvailable
	}
	if err := r.db.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Browse retrieves available listings, newest first, with optional filters.
// Filters are composed as parameterized WHERE clauses; values are never
// interpolated into the SQL text.
func (r *GORMListingRepository) Browse(search, category string) ([]models.ListingSummary, error) {
	query := r.withSeller().Where("listings.status = ?", models.StatusAvailable)

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ?", pattern, pattern)
	}
	if category != "" {
		query = query.Where("listings.category = ?", category)
	}

	var listings []models.ListingSummary
	if err := query.Order("listings.created_at DESC, listings.id DESC").Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to browse listings: %w", err)
	}
	return listings, nil
}

// Categories returns the distinct categories among available listings.
func (r *GORMListingRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Listing{}).
		Distinct("category").
		Where("status = ?", models.StatusAvailable).
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listing categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single listing with seller identity by its ID.
func (r *GORMListingRepository) GetByID(id string) (*models.ListingSummary, error) {
	var listing models.ListingSummary
	res := r.withSeller().Where("listings.id = ?", id).Limit(1).Scan(&listing)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get listing by ID %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("listing with ID %s: %w", id, ErrNotFound)
	}
	return &listing, nil
}

// GetBySeller retrieves all listings owned by a seller, newest first.
func (r *GORMListingRepository) GetBySeller(sellerID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC, id DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listings for seller %s: %w", sellerID, err)
	}
	return listings, nil
}

// MarkSold transitions a listing to Sold. Marking an already sold listing is
// a no-op that still succeeds.
func (r *GORMListingRepository) MarkSold(id string) error {
	res := r.db.Model(&models.Listing{}).Where("id = ?", id).Update("status", models.StatusSold)
	if res.Error != nil {
		return fmt.Errorf("failed to mark listing %s sold: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("listing with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
