package repositories

import "foodgram/internal/models"

// RecipeFilter narrows recipe listings. Zero values mean "not filtering on
// this dimension".
type RecipeFilter struct {
	AuthorID uint
	// TagSlugs selects recipes carrying at least one of the given tag slugs.
	TagSlugs []string
	// FavoritedBy / InCartOf restrict to recipes present in that user's
	// favorite / shopping-cart set.
	FavoritedBy uint
	InCartOf    uint
}

// RecipeRepository defines the interface for recipe data access, including
// the owned ingredient association rows and the tag links.
type RecipeRepository interface {
	List(filter RecipeFilter, offset, limit int) ([]models.Recipe, error)
	Count(filter RecipeFilter) (int64, error)
	GetByID(id uint) (*models.Recipe, error)
	Exists(id uint) (bool, error)

	// Create persists the recipe header, its ingredient rows and its tag
	// links as one atomic unit.
	Create(recipe *models.Recipe, rows []models.IngredientRecipe, tags []models.Tag) error

	// Update overwrites the scalar fields, deletes every existing ingredient
	// row and re-inserts from rows, and replaces the tag set, all in one
	// transaction. The ingredient rows are replaced wholesale, never merged.
	Update(recipe *models.Recipe, rows []models.IngredientRecipe, tags []models.Tag) error

	Delete(id uint) error

	ListByAuthor(authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthor(authorID uint) (int64, error)
}
