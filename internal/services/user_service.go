package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// UserService handles business logic for user profiles. Password handling
// lives in AuthService; this service never touches credential fields.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateUser applies the given profile fields to an existing user and
// returns the updated row. Empty fields are left unchanged.
func (s *UserService) UpdateUser(id string, update models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Birthday != "" {
		user.Birthday = update.Birthday
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return user, nil
}
