package services

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
)

// User handles user-related operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(repo *repos.UserRepository) *User {
	return &User{
		repo: repo,
	}
}

// Create creates a new user
func (s *User) Create(ctx context.Context, user *models.User) error {
	return s.repo.Create(ctx, user)
}

// Get retrieves a user by ID
func (s *User) Get(ctx context.Context, userID uint) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// List retrieves all users with pagination
func (s *User) List(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.List(ctx, opts)
}
