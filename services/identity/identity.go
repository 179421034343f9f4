// Package identity verifies callers and creates sign-in accounts. Profiles
// live in the user repository; this package only knows uids.
package identity

import (
	"context"
	"errors"

	"athletetech/models"
)

var (
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is the result of creating a sign-in account.
type Account struct {
	UID string
	// PasswordHash is only set by identities that store passwords with the profile.
	PasswordHash string
}

// Identity is the authentication collaborator.
type Identity interface {
	CreateAccount(ctx context.Context, email, password string) (Account, error)
	VerifyToken(ctx context.Context, token string) (uid string, err error)
	// DeleteAccount removes a sign-in account whose profile could not be stored.
	DeleteAccount(ctx context.Context, uid string) error
}

// PasswordAuthenticator is implemented by identities that sign users in
// themselves instead of through a client SDK.
type PasswordAuthenticator interface {
	Authenticate(user *models.User, password string) (token string, err error)
}
