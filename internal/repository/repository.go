package repository

import (
	"context"

	"github.com/authstack/api/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	// CreateUser inserts a user. Returns ErrDuplicateEmail when the email
	// is already registered and ErrInvalidUser when a required field is
	// empty.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByEmail fetches a full user record, password hash included.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetUserByID fetches a user for profile display. The returned record
	// never carries the password hash.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
