package repositories

import (
	"errors"
	"fmt"

	"unimarket/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Create inserts a rating. The composite unique index over
// (reviewer_id, seller_id) rejects duplicates even when two submissions race
// past any application-level existence check.
func (r *GORMRatingRepository) Create(rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("rating by %s for seller %s: %w", rating.ReviewerID, rating.SellerID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// ExistsForPair reports whether the reviewer has already rated the seller.
func (r *GORMRatingRepository) ExistsForPair(reviewerID, sellerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("reviewer_id = ? AND seller_id = ?", reviewerID, sellerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check rating for pair (%s, %s): %w", reviewerID, sellerID, err)
	}
	return count > 0, nil
}

// Reputation returns the raw average rating and count for a seller. The
// average is 0 when the seller has no ratings.
func (r *GORMRatingRepository) Reputation(sellerID string) (float64, int64, error) {
	var rollup struct {
		AvgRating   float64
		RatingCount int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS rating_count").
		Where("seller_id = ?", sellerID).
		Scan(&rollup).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get reputation for seller %s: %w", sellerID, err)
	}
	return rollup.AvgRating, rollup.RatingCount, nil
}

// RecentBySeller returns the newest ratings the seller received, joined with
// reviewer names.
func (r *GORMRatingRepository) RecentBySeller(sellerID string, limit int) ([]models.RatingWithReviewer, error) {
	var ratings []models.RatingWithReviewer
	err := r.db.Table("ratings").
		Select("ratings.id, ratings.reviewer_id, ratings.rating, ratings.review_text, "+
			"ratings.created_at, users.name AS reviewer_name").
		Joins("JOIN users ON users.id = ratings.reviewer_id").
		Where("ratings.seller_id = ? AND ratings.deleted_at IS NULL", sellerID).
		Order("ratings.created_at DESC, ratings.id DESC").
		Limit(limit).
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent ratings for seller %s: %w", sellerID, err)
	}
	return ratings, nil
}
