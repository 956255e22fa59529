package handlers

import (
	"log"

	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the read-only tag and ingredient endpoints. Both
// collections are unpaginated.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the tag and ingredient routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleGetTags)
	tagRoutes.Get("/:id", h.HandleGetTagByID)

	ingredientRoutes := router.Group("/ingredients")
	ingredientRoutes.Get("/", h.HandleSearchIngredients)
	ingredientRoutes.Get("/:id", h.HandleGetIngredientByID)
}

// HandleGetTags retrieves all tags.
func (h *CatalogHandler) HandleGetTags(c *fiber.Ctx) error {
	tags, err := h.service.GetAllTags()
	if err != nil {
		log.Printf("Error getting all tags: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// HandleGetTagByID retrieves a single tag.
func (h *CatalogHandler) HandleGetTagByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	tag, err := h.service.GetTag(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// HandleSearchIngredients retrieves ingredients, optionally filtered by a
// case-insensitive name substring via the "name" query parameter.
func (h *CatalogHandler) HandleSearchIngredients(c *fiber.Ctx) error {
	ingredients, err := h.service.SearchIngredients(c.Query("name"))
	if err != nil {
		log.Printf("Error searching ingredients: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(ingredients)
}

// HandleGetIngredientByID retrieves a single ingredient.
func (h *CatalogHandler) HandleGetIngredientByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	ingredient, err := h.service.GetIngredient(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ingredient)
}
