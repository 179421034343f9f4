package userRepo

import (
	"context"
	"errors"

	"athletetech/models"
)

var (
	// ErrNotFound is returned when no profile matches.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a profile with the same email or id exists.
	ErrEmailTaken = errors.New("an account with this email already exists")
)

// UserRepository defines methods for user profile access.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by their email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. The ID is the identity provider's uid.
	Create(ctx context.Context, user *models.User) error
	// ListByType lists coaches or athletes.
	ListByType(ctx context.Context, userType string) ([]models.User, error)
	// SetFCMToken stores the device token used for push notifications.
	SetFCMToken(ctx context.Context, id, token string) error
}
