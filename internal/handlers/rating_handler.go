package handlers

import (
	"errors"
	"log"

	"unimarket/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles HTTP requests for seller ratings.
type RatingHandler struct {
	service  *services.RatingService
	validate *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterProtectedRoutes registers the rating routes.
func (h *RatingHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/sellers/:id/ratings", h.HandleSubmit)
}

// RegisterRoutes registers the public rating routes.
func (h *RatingHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sellers/:id/reputation", h.HandleReputation)
}

// SubmitRatingRequest represents the request body for rating a seller.
type SubmitRatingRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"omitempty,max=1000"`
}

// HandleSubmit records one rating from the principal for the seller in the
// path. A reviewer can rate a given seller only once.
func (h *RatingHandler) HandleSubmit(c *fiber.Ctx) error {
	sellerID := c.Params("id")

	var req SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing rating body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	rating, err := h.service.Submit(principalFromCtx(c), sellerID, req.Rating, req.ReviewText)
	if err != nil {
		log.Printf("Error rating seller %s: %v", sellerID, err)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Seller not found",
			})
		case errors.Is(err, services.ErrAlreadyRated):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "You have already rated this seller",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit rating",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rating submitted successfully",
		"rating":  rating,
	})
}

// HandleReputation returns a seller's reputation rollup.
func (h *RatingHandler) HandleReputation(c *fiber.Ctx) error {
	sellerID := c.Params("id")
	reputation, err := h.service.Reputation(sellerID)
	if err != nil {
		log.Printf("Error getting reputation for %s: %v", sellerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reputation",
			"error":   err.Error(),
		})
	}
	return c.JSON(reputation)
}
