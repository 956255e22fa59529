package repositories

import "foodgram/internal/models"

// FavoriteRepository defines the interface for the user-favorite-recipe set.
type FavoriteRepository interface {
	Add(userID, recipeID uint) error
	// Remove deletes the (user, recipe) pair and reports whether a row was
	// actually deleted.
	Remove(userID, recipeID uint) (bool, error)
	Exists(userID, recipeID uint) (bool, error)
}

// ShoppingCartRepository defines the interface for the user's shopping-cart
// recipe set.
type ShoppingCartRepository interface {
	Add(userID, recipeID uint) error
	Remove(userID, recipeID uint) (bool, error)
	Exists(userID, recipeID uint) (bool, error)

	// IngredientRows returns every ingredient association row of every recipe
	// in the user's cart, with the Ingredient preloaded, in insertion order.
	IngredientRows(userID uint) ([]models.IngredientRecipe, error)
}
