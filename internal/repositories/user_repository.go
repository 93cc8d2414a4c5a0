package repositories

import (
	"context"

	"igames/internal/models"
)

// UserRepository defines the interface for user data access.
// Update rewrites the whole record; there is no version check.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
