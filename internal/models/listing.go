package models

import "gorm.io/gorm"

// Listing lifecycle states. The only transition is Available -> Sold.
const (
	StatusAvailable = "Available"
	StatusSold      = "Sold"
)

// Listing represents an item posted for sale.
type Listing struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string  `json:"title" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" gorm:"type:varchar(50);index" validate:"required,max=50"`
	ImagePath   string  `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	SellerID    string  `json:"seller_id" gorm:"type:varchar(36);index"`
	Status      string  `json:"status" gorm:"type:varchar(20);default:'Available'"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ListingSummary is a listing joined with its seller's identity, the row shape
// returned by the browse and detail queries.
type ListingSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImagePath   string  `json:"image_path,omitempty"`
	SellerID    string  `json:"seller_id"`
	Status      string  `json:"status"`
	SellerName  string  `json:"seller_name"`
	SellerEmail string  `json:"seller_email"`
}

// ListingDetail composes a listing with the seller's reputation rollup.
type ListingDetail struct {
	ListingSummary
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
}
