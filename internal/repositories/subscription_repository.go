package repositories

import "foodgram/internal/models"

// SubscriptionRepository defines the interface for subscription data access.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	// Delete removes the (user, author) pair and reports whether a row was
	// actually deleted.
	Delete(userID, authorID uint) (bool, error)
	Exists(userID, authorID uint) (bool, error)
	ListByUser(userID uint, offset, limit int) ([]models.Subscription, error)
	CountByUser(userID uint) (int64, error)
}
