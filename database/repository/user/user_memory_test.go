package userRepo

import (
	"context"
	"testing"

	"athletetech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepoCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	// profiles seeded without an email do not collide with each other
	require.NoError(t, repo.Create(ctx, &models.User{ID: "c1", UserType: models.UserTypeCoach}))
	require.NoError(t, repo.Create(ctx, &models.User{ID: "a1", UserType: models.UserTypeAthlete}))
	_, err := repo.GetByEmail(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	u := &models.User{Email: "andy@example.com", UserType: models.UserTypeAthlete}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err = repo.Create(ctx, &models.User{Email: "andy@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	err = repo.Create(ctx, &models.User{ID: "c1", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "andy@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
