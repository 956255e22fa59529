package services

import (
	"errors"
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/models"
	"foodgram/internal/repositories"

	"gorm.io/gorm"
)

// SubscriptionService handles following and unfollowing authors and the
// subscription listing.
type SubscriptionService struct {
	userRepo   repositories.UserRepository
	subRepo    repositories.SubscriptionRepository
	recipeRepo repositories.RecipeRepository
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	recipeRepo repositories.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo:   userRepo,
		subRepo:    subRepo,
		recipeRepo: recipeRepo,
	}
}

// buildView assembles the subscription view for one followed author: account
// fields, their recipes truncated to recipesLimit (0 means all), and the
// total recipe count computed independently of the truncation.
func (s *SubscriptionService) buildView(author *models.User, recipesLimit int) (dto.SubscriptionResponse, error) {
	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return dto.SubscriptionResponse{}, err
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return dto.SubscriptionResponse{}, err
	}

	abridged := make([]dto.AbridgedRecipeResponse, 0, len(recipes))
	for i := range recipes {
		abridged = append(abridged, dto.NewAbridgedRecipeResponse(&recipes[i]))
	}
	return dto.SubscriptionResponse{
		ID:           author.ID,
		Username:     author.Username,
		Email:        author.Email,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      abridged,
		RecipesCount: count,
	}, nil
}

// Subscribe makes userID follow authorID and returns the subscription view.
// Self-subscribing and duplicate subscribing are conflicts; a missing author
// is not found.
func (s *SubscriptionService) Subscribe(userID, authorID uint, recipesLimit int) (*dto.SubscriptionResponse, error) {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: author %d", translateDBError(err), authorID)
	}
	if userID == authorID {
		return nil, fmt.Errorf("%w: you cannot subscribe to yourself", ErrConflict)
	}
	exists, err := s.subRepo.Exists(userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: you are already subscribed to this user", ErrConflict)
	}

	sub := &models.Subscription{UserID: userID, AuthorID: authorID}
	if err := s.subRepo.Create(sub); err != nil {
		// A concurrent duplicate subscribe loses the insert race; report it
		// the same way as the pre-checked duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you are already subscribed to this user", ErrConflict)
		}
		return nil, err
	}

	view, err := s.buildView(author, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Unsubscribe removes the follow relation. Removing a relation that does not
// exist is a validation error.
func (s *SubscriptionService) Unsubscribe(userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		return fmt.Errorf("%w: author %d", translateDBError(err), authorID)
	}
	removed, err := s.subRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: you are not subscribed to this user", ErrValidation)
	}
	return nil
}

// ListSubscriptions retrieves a page of the user's followed authors with
// their recipes, plus the total subscription count.
func (s *SubscriptionService) ListSubscriptions(userID uint, recipesLimit, offset, limit int) ([]dto.SubscriptionResponse, int64, error) {
	subs, err := s.subRepo.ListByUser(userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.subRepo.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	views := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		author := subs[i].Author
		if author == nil {
			// Author rows are preloaded; a nil here means the account vanished
			// between queries, skip it rather than fail the listing.
			continue
		}
		view, err := s.buildView(author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, count, nil
}
