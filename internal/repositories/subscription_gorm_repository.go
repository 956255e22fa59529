package repositories

import (
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMSubscriptionRepository is a GORM implementation of SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

// NewGORMSubscriptionRepository creates a new instance of GORMSubscriptionRepository.
func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{
		db: db,
	}
}

// Create inserts a subscription row. The unique index on (user, author) makes
// a concurrent duplicate insert fail with gorm.ErrDuplicatedKey, which the
// service layer reports as a conflict.
func (r *GORMSubscriptionRepository) Create(sub *models.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// Delete removes the (user, author) pair. Uniqueness guarantees at most one
// row is affected.
func (r *GORMSubscriptionRepository) Delete(userID, authorID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the user is subscribed to the author.
func (r *GORMSubscriptionRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves a page of the user's subscriptions with the author
// preloaded.
func (r *GORMSubscriptionRepository) ListByUser(userID uint, offset, limit int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Author").
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user %d: %w", userID, err)
	}
	return subs, nil
}

// CountByUser returns how many authors the user is subscribed to.
func (r *GORMSubscriptionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Subscription{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count subscriptions for user %d: %w", userID, err)
	}
	return count, nil
}
