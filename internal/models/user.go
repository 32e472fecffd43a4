package models

import "gorm.io/gorm"

// User represents a registered member of the campus marketplace.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	CollegeName string `json:"college_name" gorm:"type:varchar(150)"`
	Verified    bool   `json:"verified"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Principal identifies the authenticated user an operation is performed for.
// Handlers build it from validated token claims and pass it explicitly into
// services, so services never read ambient request state.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
