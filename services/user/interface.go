package user

import (
	"context"

	userRepo "athletetech/database/repository/user"
	"athletetech/models"
	"athletetech/services/identity"
	"athletetech/services/notification"
)

type UserService interface {
	// Registration and sign-in
	Register(ctx context.Context, req models.UserRegistrationRequest) (*AuthResponse, error)
	StartSession(ctx context.Context, uid, expectedType string) (*models.User, error)
	Login(ctx context.Context, email, password, expectedType string) (*AuthResponse, error)

	// Profiles
	GetProfile(ctx context.Context, id string) (*models.User, error)
	ListCoaches(ctx context.Context) ([]models.UserMinimal, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// AuthResponse is the signed-in profile. Token is only set when this server
// issues tokens itself (local auth mode).
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	Identity     identity.Identity
	Notification notification.NotificationService
}

func NewDefaultUserService(repo userRepo.UserRepository, id identity.Identity, notif notification.NotificationService) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Identity: id, Notification: notif}
}
