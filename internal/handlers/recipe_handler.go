package handlers

import (
	"log"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/pagination"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes, the favorite and
// shopping-cart relations, and the shopping-list export.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
	cfg      config.Config
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService, cfg config.Config) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: dto.NewValidator(),
		cfg:      cfg,
	}
}

// RegisterRoutes registers the recipe routes with the Fiber app. The static
// download path precedes /:id so it is matched first.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, required, optional fiber.Handler) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/download_shopping_cart", required, h.HandleDownloadShoppingCart)
	recipeRoutes.Get("/", optional, h.HandleListRecipes)
	recipeRoutes.Post("/", required, h.HandleCreateRecipe)
	recipeRoutes.Get("/:id", optional, h.HandleGetRecipeByID)
	recipeRoutes.Patch("/:id", required, h.HandleUpdateRecipe)
	recipeRoutes.Delete("/:id", required, h.HandleDeleteRecipe)
	recipeRoutes.Post("/:id/favorite", required, h.HandleAddFavorite)
	recipeRoutes.Delete("/:id/favorite", required, h.HandleRemoveFavorite)
	recipeRoutes.Post("/:id/shopping_cart", required, h.HandleAddToCart)
	recipeRoutes.Delete("/:id/shopping_cart", required, h.HandleRemoveFromCart)
}

// HandleListRecipes retrieves a page of recipes. Supported filters: author
// (exact id), tags (repeated slug values, OR semantics), is_favorited and
// is_in_shopping_cart (authenticated viewers only; anonymous use yields an
// empty page).
func (h *RecipeHandler) HandleListRecipes(c *fiber.Ctx) error {
	filter := services.RecipeListFilter{
		AuthorID:         uint(c.QueryInt("author", 0)),
		IsFavorited:      queryFlag(c, "is_favorited"),
		IsInShoppingCart: queryFlag(c, "is_in_shopping_cart"),
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(slug))
	}

	params := pagination.Parse(c, h.cfg.PageSize)
	recipes, count, err := h.service.ListRecipes(filter, currentUserID(c), params.Offset(), params.Limit)
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(pagination.NewPage(c.Path(), count, params, recipes))
}

// HandleGetRecipeByID retrieves a single recipe.
func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	recipe, err := h.service.GetRecipe(id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recipe)
}

// parseRecipeRequest parses and tag-validates a recipe payload.
func (h *RecipeHandler) parseRecipeRequest(c *fiber.Ctx) (*dto.RecipeRequest, error) {
	var req dto.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleCreateRecipe creates a recipe authored by the authenticated user.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	req, err := h.parseRecipeRequest(c)
	if err != nil {
		return respondValidationErrors(c, err)
	}

	recipe, err := h.service.CreateRecipe(currentUserID(c), *req)
	if err != nil {
		log.Printf("Error creating recipe: %v", err)
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe overwrites a recipe. Author only.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	req, err := h.parseRecipeRequest(c)
	if err != nil {
		return respondValidationErrors(c, err)
	}

	recipe, err := h.service.UpdateRecipe(currentUserID(c), id, *req)
	if err != nil {
		log.Printf("Error updating recipe %d: %v", id, err)
		return respondServiceError(c, err)
	}
	return c.JSON(recipe)
}

// HandleDeleteRecipe deletes a recipe. Author only.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.service.DeleteRecipe(currentUserID(c), id); err != nil {
		log.Printf("Error deleting recipe %d: %v", id, err)
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddFavorite adds the recipe to the user's favorites.
func (h *RecipeHandler) HandleAddFavorite(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	view, err := h.service.AddFavorite(currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleRemoveFavorite removes the recipe from the user's favorites.
func (h *RecipeHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.service.RemoveFavorite(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddToCart adds the recipe to the user's shopping cart.
func (h *RecipeHandler) HandleAddToCart(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	view, err := h.service.AddToCart(currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleRemoveFromCart removes the recipe from the user's shopping cart.
func (h *RecipeHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.service.RemoveFromCart(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDownloadShoppingCart renders the user's cart as a downloadable
// plain-text shopping list.
func (h *RecipeHandler) HandleDownloadShoppingCart(c *fiber.Ctx) error {
	list, err := h.service.ShoppingList(currentUserID(c))
	if err != nil {
		log.Printf("Error building shopping list: %v", err)
		return respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.SendString(list)
}
