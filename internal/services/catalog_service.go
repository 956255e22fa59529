package services

import (
	"fmt"

	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// CatalogService handles the read-only tag and ingredient reference data.
// Entries are managed out-of-band (seeding, admin tooling); the API surface
// only lists and retrieves them.
type CatalogService struct {
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tagRepo repositories.TagRepository, ingredientRepo repositories.IngredientRepository) *CatalogService {
	return &CatalogService{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

// GetAllTags retrieves all tags.
func (s *CatalogService) GetAllTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

// GetTag retrieves a single tag by ID.
func (s *CatalogService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: tag %d", translateDBError(err), id)
	}
	return tag, nil
}

// SearchIngredients retrieves ingredients whose name contains the substring,
// case-insensitively.
func (s *CatalogService) SearchIngredients(name string) ([]models.Ingredient, error) {
	return s.ingredientRepo.Search(name)
}

// GetIngredient retrieves a single ingredient by ID.
func (s *CatalogService) GetIngredient(id uint) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: ingredient %d", translateDBError(err), id)
	}
	return ingredient, nil
}
