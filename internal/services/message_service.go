package services

import (
	"errors"
	"fmt"

	"unimarket/internal/models"
	"unimarket/internal/repositories"
)

// MessageService handles business logic for direct messaging.
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	events      EventPublisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, events EventPublisher) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// Conversations lists the principal's counterparties with the latest message
// exchanged with each, latest first.
func (s *MessageService) Conversations(principal models.Principal) ([]models.Conversation, error) {
	return s.messageRepo.Conversations(principal.ID)
}

// Thread returns the counterparty and the full message history between them
// and the principal, oldest first.
func (s *MessageService) Thread(principal models.Principal, otherID string) (*models.User, []models.ThreadMessage, error) {
	other, err := s.userRepo.GetByID(otherID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, fmt.Errorf("user %s: %w", otherID, ErrNotFound)
		}
		return nil, nil, err
	}

	messages, err := s.messageRepo.Thread(principal.ID, otherID)
	if err != nil {
		return nil, nil, err
	}
	return other, messages, nil
}

// Send inserts one immutable message from the principal to the receiver,
// optionally tied to a listing.
func (s *MessageService) Send(principal models.Principal, receiverID, body string, listingID *string) (*models.Message, error) {
	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("receiver %s: %w", receiverID, ErrNotFound)
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:   principal.ID,
		ReceiverID: receiverID,
		ListingID:  listingID,
		Body:       body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	publishEvent(s.events, "message.sent", map[string]interface{}{
		"message_id":  message.ID,
		"sender_id":   message.SenderID,
		"receiver_id": message.ReceiverID,
	})
	return message, nil
}
