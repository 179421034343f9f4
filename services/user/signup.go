package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"athletetech/models"
	"athletetech/services/identity"
	"athletetech/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// registrationFields lists the request fields in the order they are reported,
// keyed by struct field name.
var registrationFields = []struct {
	structFields []string
	field        string
	message      string
}{
	{[]string{"Email"}, "email", "please enter a valid email address"},
	{[]string{"Password"}, "password", "password should be at least 6 characters"},
	{[]string{"FirstName", "LastName"}, "name", "please enter your first and last name"},
	{[]string{"UserType"}, "userType", "please choose coach or athlete"},
	{[]string{"Age"}, "age", "age must be between 13 and 100"},
	{[]string{"Sport"}, "sport", "please select your sport"},
	{[]string{"Experience"}, "experience", "please select your experience level"},
}

// Register creates the sign-in account and the profile, then sends the
// welcome email.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistrationRequest) (*AuthResponse, error) {
	req = normalize(req)
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	acct, err := s.Identity.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user := &models.User{
		ID:           acct.UID,
		Email:        req.Email,
		PasswordHash: acct.PasswordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserType:     req.UserType,
		Age:          req.Age,
		Gender:       req.Gender,
		Sport:        req.Sport,
		Experience:   req.Experience,
		Goals:        req.Goals,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if delErr := s.Identity.DeleteAccount(ctx, acct.UID); delErr != nil {
			utils.GetLogger().Error("failed to remove sign-in account after profile write failed",
				zap.String("userId", acct.UID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	utils.GetLogger().Info("user registered",
		zap.String("userId", user.ID),
		zap.String("userType", user.UserType))
	if s.Notification != nil {
		s.Notification.SendWelcome(ctx, user)
	}

	resp := &AuthResponse{User: user}
	if auth, ok := s.Identity.(identity.PasswordAuthenticator); ok {
		token, err := auth.Authenticate(user, req.Password)
		if err != nil {
			return nil, err
		}
		resp.Token = token
	}
	return resp, nil
}

func normalize(req models.UserRegistrationRequest) models.UserRegistrationRequest {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.UserType = strings.ToLower(strings.TrimSpace(req.UserType))
	req.Sport = strings.TrimSpace(req.Sport)
	req.Experience = strings.TrimSpace(req.Experience)
	req.Gender = strings.TrimSpace(req.Gender)
	req.Goals = strings.TrimSpace(req.Goals)
	return req
}

func validateRegistration(req models.UserRegistrationRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate registration: %w", err)
	}
	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}
	for _, f := range registrationFields {
		for _, name := range f.structFields {
			if failed[name] {
				return invalid(f.field, f.message)
			}
		}
	}
	return invalid(verrs[0].Field(), verrs[0].Error())
}
