package repositories

import (
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// filtered applies the listing filter to a recipes query. Tag matching uses
// OR semantics: a recipe qualifies when it carries at least one of the
// requested slugs, hence the DISTINCT after the join.
func (r *GORMRecipeRepository) filtered(filter RecipeFilter) *gorm.DB {
	query := r.db.Model(&models.Recipe{})
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.FavoritedBy != 0 {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", filter.FavoritedBy)
	}
	if filter.InCartOf != 0 {
		query = query.
			Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", filter.InCartOf)
	}
	return query
}

// List retrieves a page of recipes matching the filter, newest first, with
// author, tags and ingredient rows preloaded.
func (r *GORMRecipeRepository) List(filter RecipeFilter, offset, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.filtered(filter).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Count returns the number of recipes matching the filter, ignoring
// pagination.
func (r *GORMRecipeRepository) Count(filter RecipeFilter) (int64, error) {
	var count int64
	if err := r.filtered(filter).Distinct("recipes.id").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single recipe with author, tags and ingredient rows
// preloaded.
func (r *GORMRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
	}
	return &recipe, nil
}

// Exists reports whether a recipe with the given ID exists.
func (r *GORMRecipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check recipe %d: %w", id, err)
	}
	return count > 0, nil
}

// Create persists the recipe header, bulk-inserts its ingredient rows and
// attaches the tag set inside a single transaction, so a failure mid-sequence
// rolls everything back.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe, rows []models.IngredientRecipe, tags []models.Tag) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update overwrites the scalar fields, deletes all existing ingredient rows
// and re-inserts the new set, then replaces the tag links, all in one
// transaction. Full replace, not diff/merge.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe, rows []models.IngredientRecipe, tags []models.Tag) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		scalars := map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(scalars).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe %d: %w", recipe.ID, err)
	}
	return nil
}

// Delete deletes a recipe. Ingredient rows, tag links, favorites and cart
// entries are removed alongside it in the same transaction.
func (r *GORMRecipeRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}
	return nil
}

// ListByAuthor retrieves an author's recipes in insertion order, optionally
// truncated to limit (0 means no truncation).
func (r *GORMRecipeRepository) ListByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := r.db.Where("author_id = ?", authorID).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes by author %d: %w", authorID, err)
	}
	return recipes, nil
}

// CountByAuthor returns an author's total recipe count, independent of any
// truncation limit.
func (r *GORMRecipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes by author %d: %w", authorID, err)
	}
	return count, nil
}
