package handlers

import (
	"errors"
	"log"

	"unimarket/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for direct messaging.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterProtectedRoutes registers the messaging routes. All of them need a
// valid token.
func (h *MessageHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/chats", h.HandleConversations)
	router.Get("/messages/:user_id", h.HandleThread)
	router.Post("/messages", h.HandleSend)
}

// HandleConversations returns the principal's conversation list: one entry
// per counterparty carrying the latest message, latest first.
func (h *MessageHandler) HandleConversations(c *fiber.Ctx) error {
	conversations, err := h.service.Conversations(principalFromCtx(c))
	if err != nil {
		log.Printf("Error getting conversations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve conversations",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"conversations": conversations,
	})
}

// HandleThread returns the full message history with one counterparty.
func (h *MessageHandler) HandleThread(c *fiber.Ctx) error {
	otherID := c.Params("user_id")
	other, messages, err := h.service.Thread(principalFromCtx(c), otherID)
	if err != nil {
		log.Printf("Error getting thread with %s: %v", otherID, err)
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve messages",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"other_user": fiber.Map{
			"id":    other.ID,
			"name":  other.Name,
			"email": other.Email,
		},
		"messages": messages,
	})
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	ReceiverID  string  `json:"receiver_id" validate:"required"`
	MessageText string  `json:"message_text" validate:"required,max=2000"`
	ListingID   *string `json:"listing_id" validate:"omitempty"`
}

// HandleSend inserts one message and reports the outcome in the
// {success, error?} shape, including store-layer failures.
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing send message body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	message, err := h.service.Send(principalFromCtx(c), req.ReceiverID, req.MessageText, req.ListingID)
	if err != nil {
		log.Printf("Error sending message to %s: %v", req.ReceiverID, err)
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Receiver not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Could not send message",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}
