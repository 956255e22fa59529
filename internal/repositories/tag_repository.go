package repositories

import "foodgram/internal/models"

// TagRepository defines the interface for tag data access. Tags are managed
// through the admin surface; the API only reads and references them.
type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	Create(tag *models.Tag) error
}
