package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one immutable direct message between two users, optionally tied
// to the listing the conversation is about.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SenderID   string    `json:"sender_id" gorm:"type:varchar(36);index"`
	ReceiverID string    `json:"receiver_id" gorm:"type:varchar(36);index"`
	ListingID  *string   `json:"listing_id,omitempty" gorm:"type:varchar(36)"`
	Body       string    `json:"body" validate:"required,max=2000"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Conversation is one entry of a user's inbox: the counterparty plus the most
// recent message exchanged with them, regardless of direction.
type Conversation struct {
	CounterpartyID   string    `json:"counterparty_id"`
	CounterpartyName string    `json:"counterparty_name"`
	Body             string    `json:"body"`
	Timestamp        time.Time `json:"timestamp"`
}

// ThreadMessage is a message joined with its sender's display name.
type ThreadMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	ListingID  *string   `json:"listing_id,omitempty"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
	SenderName string    `json:"sender_name"`
}
