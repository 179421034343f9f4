package identity

import (
	"context"
	"fmt"
	"time"

	"athletetech/models"
	"athletetech/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalIdentity issues its own HS256 tokens and keeps bcrypt hashes on the
// profile. Used when AUTH_MODE=local.
type LocalIdentity struct {
	ttl time.Duration
}

func NewLocalIdentity(ttl time.Duration) *LocalIdentity {
	return &LocalIdentity{ttl: ttl}
}

func (l *LocalIdentity) CreateAccount(_ context.Context, _ string, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return Account{UID: uuid.New().String(), PasswordHash: string(hash)}, nil
}

func (l *LocalIdentity) VerifyToken(_ context.Context, token string) (string, error) {
	uid, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return uid, nil
}

// DeleteAccount is a no-op: the hash lives on the profile, so there is no
// separate account to remove.
func (l *LocalIdentity) DeleteAccount(context.Context, string) error { return nil }

// Authenticate checks the password against the stored hash and issues a token.
func (l *LocalIdentity) Authenticate(user *models.User, password string) (string, error) {
	if user == nil || user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(user.ID, user.Email, l.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
