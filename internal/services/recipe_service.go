package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/models"
	"foodgram/internal/repositories"

	"gorm.io/gorm"
)

// ImageStore saves an incoming image payload (data URI or stored reference)
// and returns the stored reference.
type ImageStore interface {
	Save(image string) (string, error)
}

// EventPublisher publishes recipe lifecycle events. A nil publisher disables
// publication; publish failures are logged and never fail the request.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// RecipeService handles recipe CRUD, the favorite and shopping-cart sets,
// and the shopping-list export.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	favoriteRepo   repositories.FavoriteRepository
	cartRepo       repositories.ShoppingCartRepository
	subRepo        repositories.SubscriptionRepository
	images         ImageStore
	events         EventPublisher
	cfg            config.Config
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	favoriteRepo repositories.FavoriteRepository,
	cartRepo repositories.ShoppingCartRepository,
	subRepo repositories.SubscriptionRepository,
	images ImageStore,
	events EventPublisher,
	cfg config.Config,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		subRepo:        subRepo,
		images:         images,
		events:         events,
		cfg:            cfg,
	}
}

// RecipeListFilter carries the caller-supplied listing filters before they
// are resolved against the viewer.
type RecipeListFilter struct {
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// ListRecipes retrieves a page of recipes matching the filter, personalized
// for the viewer. The is_favorited / is_in_shopping_cart filters are
// fail-closed: set by an anonymous viewer, they yield an empty result rather
// than an error.
func (s *RecipeService) ListRecipes(filter RecipeListFilter, viewerID uint, offset, limit int) ([]dto.RecipeResponse, int64, error) {
	if (filter.IsFavorited || filter.IsInShoppingCart) && viewerID == 0 {
		return []dto.RecipeResponse{}, 0, nil
	}

	repoFilter := repositories.RecipeFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
	}
	if filter.IsFavorited {
		repoFilter.FavoritedBy = viewerID
	}
	if filter.IsInShoppingCart {
		repoFilter.InCartOf = viewerID
	}

	recipes, err := s.recipeRepo.List(repoFilter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.recipeRepo.Count(repoFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp, err := s.buildResponse(&recipes[i], viewerID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}
	return responses, count, nil
}

// GetRecipe retrieves a single recipe personalized for the viewer.
func (s *RecipeService) GetRecipe(id, viewerID uint) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe %d", translateDBError(err), id)
	}
	resp, err := s.buildResponse(recipe, viewerID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// buildResponse assembles the full recipe view: nested author with the
// viewer's subscription state, ingredient lines, and the viewer's favorite /
// cart flags.
func (s *RecipeService) buildResponse(recipe *models.Recipe, viewerID uint) (dto.RecipeResponse, error) {
	var author dto.UserResponse
	if recipe.Author != nil {
		subscribed := false
		if viewerID != 0 && viewerID != recipe.AuthorID {
			var err error
			subscribed, err = s.subRepo.Exists(viewerID, recipe.AuthorID)
			if err != nil {
				return dto.RecipeResponse{}, err
			}
		}
		author = dto.NewUserResponse(recipe.Author, subscribed)
	}

	isFavorited := false
	isInCart := false
	if viewerID != 0 {
		var err error
		isFavorited, err = s.favoriteRepo.Exists(viewerID, recipe.ID)
		if err != nil {
			return dto.RecipeResponse{}, err
		}
		isInCart, err = s.cartRepo.Exists(viewerID, recipe.ID)
		if err != nil {
			return dto.RecipeResponse{}, err
		}
	}
	return dto.NewRecipeResponse(recipe, author, isFavorited, isInCart), nil
}

// resolvePayload validates the recipe payload against the catalogue and the
// configured bounds, returning the referenced tags and the ingredient rows
// to persist.
func (s *RecipeService) resolvePayload(req dto.RecipeRequest) ([]models.Tag, []models.IngredientRecipe, error) {
	if len(req.Ingredients) == 0 {
		return nil, nil, fmt.Errorf("%w: ingredients field is required", ErrValidation)
	}
	if len(req.Tags) == 0 {
		return nil, nil, fmt.Errorf("%w: tags field is required", ErrValidation)
	}
	if req.CookingTime < s.cfg.MinCookingTime || req.CookingTime > s.cfg.MaxCookingTime {
		return nil, nil, fmt.Errorf("%w: cooking_time must be between %d and %d",
			ErrValidation, s.cfg.MinCookingTime, s.cfg.MaxCookingTime)
	}

	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	seenIngredients := make(map[uint]bool, len(req.Ingredients))
	for _, in := range req.Ingredients {
		if seenIngredients[in.ID] {
			return nil, nil, fmt.Errorf("%w: ingredients must not repeat", ErrValidation)
		}
		seenIngredients[in.ID] = true
		ingredientIDs = append(ingredientIDs, in.ID)
		if in.Amount < s.cfg.MinAmount || in.Amount > s.cfg.MaxAmount {
			return nil, nil, fmt.Errorf("%w: amount for ingredient %d must be between %d and %d",
				ErrValidation, in.ID, s.cfg.MinAmount, s.cfg.MaxAmount)
		}
	}

	seenTags := make(map[uint]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			return nil, nil, fmt.Errorf("%w: tags must not repeat", ErrValidation)
		}
		seenTags[id] = true
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	found := make(map[uint]bool, len(ingredients))
	for _, in := range ingredients {
		found[in.ID] = true
	}
	for _, id := range ingredientIDs {
		if !found[id] {
			return nil, nil, fmt.Errorf("%w: no ingredient with id=%d", ErrValidation, id)
		}
	}

	tags, err := s.tagRepo.GetByIDs(req.Tags)
	if err != nil {
		return nil, nil, err
	}
	foundTags := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		foundTags[tag.ID] = true
	}
	for _, id := range req.Tags {
		if !foundTags[id] {
			return nil, nil, fmt.Errorf("%w: no tag with id=%d", ErrValidation, id)
		}
	}

	rows := make([]models.IngredientRecipe, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		rows = append(rows, models.IngredientRecipe{
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
	}
	return tags, rows, nil
}

// CreateRecipe validates the payload, stores the image, and persists the
// recipe with its ingredient rows and tag links as one atomic unit.
func (s *RecipeService) CreateRecipe(authorID uint, req dto.RecipeRequest) (*dto.RecipeResponse, error) {
	tags, rows, err := s.resolvePayload(req)
	if err != nil {
		return nil, err
	}

	image, err := s.images.Save(req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepo.Create(recipe, rows, tags); err != nil {
		return nil, translateDBError(err)
	}

	s.publish("recipe.created", recipe)
	return s.GetRecipe(recipe.ID, authorID)
}

// UpdateRecipe overwrites the recipe's scalar fields and replaces its
// ingredient rows and tag set wholesale. Only the author may update.
func (s *RecipeService) UpdateRecipe(actorID, recipeID uint, req dto.RecipeRequest) (*dto.RecipeResponse, error) {
	existing, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe %d", translateDBError(err), recipeID)
	}
	if existing.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the author may edit this recipe", ErrForbidden)
	}

	tags, rows, err := s.resolvePayload(req)
	if err != nil {
		return nil, err
	}

	image, err := s.images.Save(req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing.Name = req.Name
	existing.Image = image
	existing.Text = req.Text
	existing.CookingTime = req.CookingTime
	if err := s.recipeRepo.Update(existing, rows, tags); err != nil {
		return nil, translateDBError(err)
	}

	s.publish("recipe.updated", existing)
	return s.GetRecipe(recipeID, actorID)
}

// DeleteRecipe removes the recipe and everything hanging off it. Only the
// author may delete.
func (s *RecipeService) DeleteRecipe(actorID, recipeID uint) error {
	existing, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return fmt.Errorf("%w: recipe %d", translateDBError(err), recipeID)
	}
	if existing.AuthorID != actorID {
		return fmt.Errorf("%w: only the author may delete this recipe", ErrForbidden)
	}
	if err := s.recipeRepo.Delete(recipeID); err != nil {
		return translateDBError(err)
	}
	s.publish("recipe.deleted", existing)
	return nil
}

// addToSet implements the shared add semantics of the favorite and cart
// relations: the recipe must exist, a duplicate add is a conflict, success
// returns the abridged recipe view.
func (s *RecipeService) addToSet(
	userID, recipeID uint,
	exists func(userID, recipeID uint) (bool, error),
	add func(userID, recipeID uint) error,
	relation string,
) (*dto.AbridgedRecipeResponse, error) {
	ok, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot add a recipe that does not exist", ErrValidation)
	}
	present, err := exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, fmt.Errorf("%w: recipe is already in %s", ErrConflict, relation)
	}
	if err := add(userID, recipeID); err != nil {
		// Concurrent duplicate adds race on the unique index; the loser gets
		// the same conflict as a pre-checked duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: recipe is already in %s", ErrConflict, relation)
		}
		return nil, err
	}
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := dto.NewAbridgedRecipeResponse(recipe)
	return &resp, nil
}

// removeFromSet implements the shared remove semantics: the recipe must
// exist, removing an absent pair is a validation error.
func (s *RecipeService) removeFromSet(
	userID, recipeID uint,
	remove func(userID, recipeID uint) (bool, error),
	relation string,
) error {
	ok, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
	}
	removed, err := remove(userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: recipe is not in %s", ErrValidation, relation)
	}
	return nil
}

// AddFavorite puts the recipe into the user's favorites.
func (s *RecipeService) AddFavorite(userID, recipeID uint) (*dto.AbridgedRecipeResponse, error) {
	return s.addToSet(userID, recipeID, s.favoriteRepo.Exists, s.favoriteRepo.Add, "favorites")
}

// RemoveFavorite takes the recipe out of the user's favorites.
func (s *RecipeService) RemoveFavorite(userID, recipeID uint) error {
	return s.removeFromSet(userID, recipeID, s.favoriteRepo.Remove, "favorites")
}

// AddToCart puts the recipe into the user's shopping cart.
func (s *RecipeService) AddToCart(userID, recipeID uint) (*dto.AbridgedRecipeResponse, error) {
	return s.addToSet(userID, recipeID, s.cartRepo.Exists, s.cartRepo.Add, "the shopping cart")
}

// RemoveFromCart takes the recipe out of the user's shopping cart.
func (s *RecipeService) RemoveFromCart(userID, recipeID uint) error {
	return s.removeFromSet(userID, recipeID, s.cartRepo.Remove, "the shopping cart")
}

// ShoppingList renders the user's cart as a numbered plain-text listing.
// Amounts are summed per (capitalized name, measurement unit) across every
// recipe in the cart; line order follows first appearance.
func (s *RecipeService) ShoppingList(userID uint) (string, error) {
	rows, err := s.cartRepo.IngredientRows(userID)
	if err != nil {
		return "", err
	}

	type lineKey struct {
		name string
		unit string
	}
	totals := make(map[lineKey]int)
	order := make([]lineKey, 0, len(rows))
	for _, row := range rows {
		if row.Ingredient == nil {
			continue
		}
		key := lineKey{
			name: capitalize(row.Ingredient.Name),
			unit: row.Ingredient.MeasurementUnit,
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += row.Amount
	}

	var b strings.Builder
	b.WriteString("Shopping list\n")
	for i, key := range order {
		fmt.Fprintf(&b, "%d. %s (%s) - %d\n", i+1, key.name, key.unit, totals[key])
	}
	return b.String(), nil
}

// capitalize upper-cases the first rune and lower-cases the rest, for display
// in the shopping list.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// publish emits a recipe lifecycle event. Failures are logged, never
// propagated: event delivery must not fail the request.
func (s *RecipeService) publish(routingKey string, recipe *models.Recipe) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"recipeID": recipe.ID,
		"authorID": recipe.AuthorID,
		"name":     recipe.Name,
		"action":   routingKey,
	})
	if err != nil {
		log.Printf("Failed to marshal recipe event: %v", err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for recipe %d: %v", routingKey, recipe.ID, err)
	}
}
