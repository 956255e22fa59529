package services

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/repositories"
)

// UserService handles read access to user accounts, personalized with the
// viewer's subscription state.
type UserService struct {
	userRepo repositories.UserRepository
	subRepo  repositories.SubscriptionRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, subRepo repositories.SubscriptionRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		subRepo:  subRepo,
	}
}

// isSubscribed reports whether viewer follows author. An anonymous viewer
// (id 0) follows nobody.
func (s *UserService) isSubscribed(viewerID, authorID uint) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.subRepo.Exists(viewerID, authorID)
}

// ListUsers retrieves a page of users together with the total count.
func (s *UserService) ListUsers(viewerID uint, offset, limit int) ([]dto.UserResponse, int64, error) {
	users, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		subscribed, err := s.isSubscribed(viewerID, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, dto.NewUserResponse(&users[i], subscribed))
	}
	return responses, count, nil
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(id, viewerID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", translateDBError(err), id)
	}
	subscribed, err := s.isSubscribed(viewerID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user, subscribed)
	return &resp, nil
}
