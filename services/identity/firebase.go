package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseIdentity delegates accounts and ID tokens to Firebase Authentication.
type FirebaseIdentity struct {
	client *auth.Client
}

func NewFirebaseIdentity(client *auth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) CreateAccount(ctx context.Context, email, password string) (Account, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return Account{}, ErrEmailExists
		}
		return Account{}, fmt.Errorf("failed to create firebase user: %w", err)
	}
	return Account{UID: record.UID}, nil
}

func (f *FirebaseIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return decoded.UID, nil
}

func (f *FirebaseIdentity) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete firebase user: %w", err)
	}
	return nil
}
