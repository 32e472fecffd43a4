package handlers

import (
	"errors"
	"io"
	"log"
	"strconv"

	"unimarket/internal/models"
	"unimarket/internal/services"
	"unimarket/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ListingHandler handles HTTP requests for the listing catalog.
type ListingHandler struct {
	service  *services.ListingService
	validate *validator.Validate
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(service *services.ListingService) *ListingHandler {
	return &ListingHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public listing routes.
func (h *ListingHandler) RegisterRoutes(router fiber.Router) {
	listingRoutes := router.Group("/listings")
	listingRoutes.Get("/", h.HandleBrowse)
	listingRoutes.Get("/:id", h.HandleDetail)
}

// RegisterProtectedRoutes registers the routes that need a valid token.
func (h *ListingHandler) RegisterProtectedRoutes(router fiber.Router) {
	listingRoutes := router.Group("/listings")
	listingRoutes.Post("/", h.HandleCreate)
	listingRoutes.Post("/:id/sold", h.HandleMarkSold)
}

// HandleBrowse returns available listings filtered by the optional search and
// category query parameters, plus the categories for filter population.
func (h *ListingHandler) HandleBrowse(c *fiber.Ctx) error {
	search := c.Query("search")
	category := c.Query("category")

	listings, categories, err := h.service.Browse(search, category)
	if err != nil {
		log.Printf("Error browsing listings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve listings",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"listings":   listings,
		"categories": categories,
	})
}

// CreateListingRequest represents the multipart form fields for a new listing.
type CreateListingRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
}

// HandleCreate creates a listing from a multipart form, with an optional
// image attachment.
func (h *ListingHandler) HandleCreate(c *fiber.Ctx) error {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be a number",
			"error":   err.Error(),
		})
	}

	req := CreateListingRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	listing := &models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}

	// The image is optional; a missing file field is not an error.
	var imageName string
	var image io.Reader
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Error opening uploaded image: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded image",
				"error":   err.Error(),
			})
		}
		defer file.Close()
		imageName = fileHeader.Filename
		image = file
	}

	created, err := h.service.Create(principalFromCtx(c), listing, imageName, image)
	if err != nil {
		return h.createError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// createError maps listing creation failures to HTTP statuses.
func (h *ListingHandler) createError(c *fiber.Ctx, err error) error {
	log.Printf("Error creating listing: %v", err)
	if errors.Is(err, storage.ErrDisallowedExtension) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image type not allowed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not create listing",
		"error":   err.Error(),
	})
}

// HandleDetail returns one listing with its seller's reputation.
func (h *ListingHandler) HandleDetail(c *fiber.Ctx) error {
	listingID := c.Params("id")
	detail, err := h.service.Detail(listingID)
	if err != nil {
		log.Printf("Error getting listing %s: %v", listingID, err)
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve listing",
			"error":   err.Error(),
		})
	}
	return c.JSON(detail)
}

// HandleMarkSold transitions a listing to Sold for its owner.
func (h *ListingHandler) HandleMarkSold(c *fiber.Ctx) error {
	listingID := c.Params("id")
	err := h.service.MarkSold(listingID, principalFromCtx(c))
	if err != nil {
		log.Printf("Error marking listing %s sold: %v", listingID, err)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Listing not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You can only mark your own listings as sold",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not mark listing sold",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Listing marked as sold",
	})
}
