package user

import (
	"errors"
	"fmt"

	userRepo "athletetech/database/repository/user"
)

var (
	ErrNotFound          = userRepo.ErrNotFound
	ErrEmailTaken        = userRepo.ErrEmailTaken
	ErrWrongAccountType  = errors.New("please use the correct login type for your account")
	ErrLoginNotAvailable = errors.New("password login is handled by the identity provider")
)

// ValidationError is a rejected signup field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
