package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating is a one-time review a buyer leaves for a seller. The composite
// unique index makes the one-rating-per-pair invariant hold under concurrent
// submissions instead of relying on a check-then-insert in the service.
type Rating struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ReviewerID string `json:"reviewer_id" gorm:"type:varchar(36);uniqueIndex:idx_reviewer_seller"`
	SellerID   string `json:"seller_id" gorm:"type:varchar(36);uniqueIndex:idx_reviewer_seller"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"omitempty,max=1000"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// RatingWithReviewer is a received rating joined with the reviewer's name.
type RatingWithReviewer struct {
	ID           string    `json:"id"`
	ReviewerID   string    `json:"reviewer_id"`
	Rating       int       `json:"rating"`
	ReviewText   string    `json:"review_text"`
	CreatedAt    time.Time `json:"created_at"`
	ReviewerName string    `json:"reviewer_name"`
}

// Reputation is the aggregate rollup of ratings a seller has received.
type Reputation struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
}
