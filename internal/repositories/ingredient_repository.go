package repositories

import "foodgram/internal/models"

// IngredientRepository defines the interface for ingredient data access.
type IngredientRepository interface {
	// Search returns ingredients whose name contains the given substring,
	// case-insensitively. An empty substring returns everything.
	Search(name string) ([]models.Ingredient, error)
	GetByID(id uint) (*models.Ingredient, error)
	GetByIDs(ids []uint) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}
