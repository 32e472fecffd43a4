package repositories

import "unimarket/internal/models"

// MessageRepository defines the interface for message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	// Conversations returns one entry per distinct counterparty of userID,
	// carrying the latest message exchanged with them, latest first.
	Conversations(userID string) ([]models.Conversation, error)
	// Thread returns every message between the two users, oldest first.
	Thread(userID, otherID string) ([]models.ThreadMessage, error)
}
