package handlers

import (
	"log"

	"unimarket/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the composed profile view.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// RegisterProtectedRoutes registers the profile route.
func (h *ProfileHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleProfile)
}

// HandleProfile returns the principal's listings, reputation, and the most
// recent ratings they received.
func (h *ProfileHandler) HandleProfile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(principalFromCtx(c))
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(profile)
}
