package dto

import "foodgram/internal/models"

// TokenResponse carries a freshly issued auth token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// UserResponse is the public view of an account, personalized with whether
// the viewer follows it.
type UserResponse struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// NewUserResponse builds a UserResponse from the persisted user.
func NewUserResponse(u *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// RecipeIngredientResponse is one ingredient line inside a recipe view.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full recipe view used by list and retrieve.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// AbridgedRecipeResponse is the minimal recipe view embedded in favorite,
// cart and subscription responses.
type AbridgedRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// NewAbridgedRecipeResponse builds the minimal view of a recipe.
func NewAbridgedRecipeResponse(r *models.Recipe) AbridgedRecipeResponse {
	return AbridgedRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// NewRecipeResponse builds the full recipe view. The flags are computed for
// the current viewer by the caller; ingredient rows must be preloaded with
// their Ingredient.
func NewRecipeResponse(r *models.Recipe, author UserResponse, isFavorited, isInCart bool) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, row := range r.Ingredients {
		line := RecipeIngredientResponse{
			ID:     row.IngredientID,
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			line.Name = row.Ingredient.Name
			line.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, line)
	}
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// SubscriptionResponse is the view of a followed author: account fields plus
// their recipes (possibly truncated by recipes_limit) and the untruncated
// recipe count.
type SubscriptionResponse struct {
	ID           uint                     `json:"id"`
	Username     string                   `json:"username"`
	Email        string                   `json:"email"`
	FirstName    string                   `json:"first_name"`
	LastName     string                   `json:"last_name"`
	IsSubscribed bool                     `json:"is_subscribed"`
	Recipes      []AbridgedRecipeResponse `json:"recipes"`
	RecipesCount int64                    `json:"recipes_count"`
}
