package user

import (
	"context"
	"strings"

	"athletetech/models"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListCoaches returns the public cards of every coach.
func (s *DefaultUserService) ListCoaches(ctx context.Context) ([]models.UserMinimal, error) {
	coaches, err := s.Repo.ListByType(ctx, models.UserTypeCoach)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserMinimal, 0, len(coaches))
	for i := range coaches {
		out = append(out, coaches[i].Minimal())
	}
	return out, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return invalid("fcmToken", "token is required")
	}
	return s.Repo.SetFCMToken(ctx, id, token)
}
