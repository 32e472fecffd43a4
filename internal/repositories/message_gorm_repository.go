package repositories

import (
	"fmt"
	"time"

	"unimarket/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create inserts a new message. Messages are immutable after this point.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// conversationsQuery folds every message touching the user onto "the other
// participant", takes the max timestamp per counterparty in a derived table,
// and joins back to recover that message's body.
const conversationsQuery = `
SELECT u.id   AS counterparty_id,
       u.name AS counterparty_name,
       m.body,
       m.timestamp
FROM (
    SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_user_id,
           body,
           timestamp
    FROM messages
    WHERE sender_id = ? OR receiver_id = ?
) m
JOIN users u ON u.id = m.other_user_id
JOIN (
    SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_user_id,
           MAX(timestamp) AS latest_time
    FROM messages
    WHERE sender_id = ? OR receiver_id = ?
    GROUP BY other_user_id
) latest ON latest.other_user_id = m.other_user_id AND latest.latest_time = m.timestamp
ORDER BY m.timestamp DESC`

// Conversations returns the latest message per counterparty, latest first.
func (r *GORMMessageRepository) Conversations(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Raw(conversationsQuery,
		userID, userID, userID,
		userID, userID, userID,
	).Scan(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations for user %s: %w", userID, err)
	}
	return conversations, nil
}

// Thread returns all messages between the two users in either direction,
// oldest first, each joined with its sender's name.
func (r *GORMMessageRepository) Thread(userID, otherID string) ([]models.ThreadMessage, error) {
	var messages []models.ThreadMessage
	err := r.db.Table("messages").
		Select("messages.id, messages.sender_id, messages.receiver_id, messages.listing_id, "+
			"messages.body, messages.timestamp, users.name AS sender_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("messages.timestamp ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get thread between %s and %s: %w", userID, otherID, err)
	}
	return messages, nil
}
