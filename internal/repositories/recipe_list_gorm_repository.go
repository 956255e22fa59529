package repositories

import (
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Add inserts the (user, recipe) pair. A concurrent duplicate insert fails
// with gorm.ErrDuplicatedKey via the composite unique index.
func (r *GORMFavoriteRepository) Add(userID, recipeID uint) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.Create(&fav).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes the (user, recipe) pair, reporting whether a row existed.
func (r *GORMFavoriteRepository) Remove(userID, recipeID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the recipe is in the user's favorites.
func (r *GORMFavoriteRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// GORMShoppingCartRepository is a GORM implementation of ShoppingCartRepository.
type GORMShoppingCartRepository struct {
	db *gorm.DB
}

// NewGORMShoppingCartRepository creates a new instance of GORMShoppingCartRepository.
func NewGORMShoppingCartRepository(db *gorm.DB) *GORMShoppingCartRepository {
	return &GORMShoppingCartRepository{
		db: db,
	}
}

// Add inserts the (user, recipe) pair. A concurrent duplicate insert fails
// with gorm.ErrDuplicatedKey via the composite unique index.
func (r *GORMShoppingCartRepository) Add(userID, recipeID uint) error {
	item := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add to shopping cart: %w", err)
	}
	return nil
}

// Remove deletes the (user, recipe) pair, reporting whether a row existed.
func (r *GORMShoppingCartRepository) Remove(userID, recipeID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove from shopping cart: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the recipe is in the user's shopping cart.
func (r *GORMShoppingCartRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shopping cart: %w", err)
	}
	return count > 0, nil
}

// IngredientRows returns every ingredient association row of every recipe in
// the user's cart, Ingredient preloaded, in cart insertion order.
func (r *GORMShoppingCartRepository) IngredientRows(userID uint) ([]models.IngredientRecipe, error) {
	var rows []models.IngredientRecipe
	err := r.db.Preload("Ingredient").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart ingredient rows for user %d: %w", userID, err)
	}
	return rows, nil
}
