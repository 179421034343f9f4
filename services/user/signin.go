package user

import (
	"context"
	"errors"
	"strings"

	"athletetech/models"
	"athletetech/services/identity"
)

// StartSession loads the profile of an authenticated uid and checks that
// the caller used the login page of their account type.
func (s *DefaultUserService) StartSession(ctx context.Context, uid, expectedType string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if expectedType != "" && u.UserType != expectedType {
		return nil, ErrWrongAccountType
	}
	return u, nil
}

// Login signs in with email and password when this server owns the passwords.
func (s *DefaultUserService) Login(ctx context.Context, email, password, expectedType string) (*AuthResponse, error) {
	auth, ok := s.Identity.(identity.PasswordAuthenticator)
	if !ok {
		return nil, ErrLoginNotAvailable
	}
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}
	token, err := auth.Authenticate(u, password)
	if err != nil {
		return nil, err
	}
	if expectedType != "" && u.UserType != expectedType {
		return nil, ErrWrongAccountType
	}
	return &AuthResponse{User: u, Token: token}, nil
}
