package user

import (
	"context"
	"errors"
	"testing"
	"time"

	userRepo "athletetech/database/repository/user"
	"athletetech/models"
	"athletetech/services/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type welcomeRecorder struct{ welcomed []string }

func (w *welcomeRecorder) SendWelcome(_ context.Context, u *models.User) {
	w.welcomed = append(w.welcomed, u.Email)
}
func (w *welcomeRecorder) NotifyBooking(context.Context, *models.Booking, string) {}
func (w *welcomeRecorder) ScheduleReminders(context.Context, *models.Booking)      {}

// tokenOnly stands in for an external identity provider.
type tokenOnly struct{}

func (tokenOnly) CreateAccount(context.Context, string, string) (identity.Account, error) {
	return identity.Account{UID: "firebase-uid"}, nil
}
func (tokenOnly) VerifyToken(context.Context, string) (string, error) { return "firebase-uid", nil }
func (tokenOnly) DeleteAccount(context.Context, string) error         { return nil }

// removedAccounts records the sign-in accounts deleted by the service.
type removedAccounts struct {
	tokenOnly
	deleted []string
}

func (r *removedAccounts) DeleteAccount(_ context.Context, uid string) error {
	r.deleted = append(r.deleted, uid)
	return nil
}

// unwritableProfiles fails every profile insert.
type unwritableProfiles struct {
	*userRepo.MemoryUserRepo
}

func (unwritableProfiles) Create(context.Context, *models.User) error {
	return errors.New("profile store unavailable")
}

func validRequest() models.UserRegistrationRequest {
	return models.UserRegistrationRequest{
		Email:      " Andy@Example.com ",
		Password:   "secret1",
		UserType:   "athlete",
		FirstName:  "Andy",
		LastName:   "Athlete",
		Age:        19,
		Sport:      "Tennis",
		Experience: "intermediate",
	}
}

func newService() (*DefaultUserService, *welcomeRecorder) {
	w := &welcomeRecorder{}
	return NewDefaultUserService(userRepo.NewMemoryUserRepo(), identity.NewLocalIdentity(time.Hour), w), w
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, welcome := newService()

	resp, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "andy@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.PasswordHash)
	assert.Equal(t, []string{"andy@example.com"}, welcome.welcomed)

	_, err = svc.Register(ctx, validRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, "ANDY@example.com", "secret1", models.UserTypeAthlete)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "andy@example.com", "secret1", models.UserTypeCoach)
	assert.ErrorIs(t, err, ErrWrongAccountType)

	_, err = svc.Login(ctx, "andy@example.com", "nope", "")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", "secret1", "")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*models.UserRegistrationRequest)
	}{
		{"email", func(r *models.UserRegistrationRequest) { r.Email = "not-an-email" }},
		{"password", func(r *models.UserRegistrationRequest) { r.Password = "12345" }},
		{"name", func(r *models.UserRegistrationRequest) { r.LastName = " " }},
		{"userType", func(r *models.UserRegistrationRequest) { r.UserType = "admin" }},
		{"age", func(r *models.UserRegistrationRequest) { r.Age = 12 }},
		{"age", func(r *models.UserRegistrationRequest) { r.Age = 101 }},
		{"sport", func(r *models.UserRegistrationRequest) { r.Sport = "" }},
		{"experience", func(r *models.UserRegistrationRequest) { r.Experience = "" }},
		{"userType", func(r *models.UserRegistrationRequest) { r.UserType = "" }},
		{"email", func(r *models.UserRegistrationRequest) { r.Email = ""; r.Age = 5 }},
		{"name", func(r *models.UserRegistrationRequest) { r.FirstName = ""; r.Sport = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			svc, welcome := newService()
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, welcome.welcomed)
		})
	}
}

func TestRegisterRemovesAccountWhenProfileWriteFails(t *testing.T) {
	ctx := context.Background()
	id := &removedAccounts{}
	welcome := &welcomeRecorder{}
	svc := NewDefaultUserService(unwritableProfiles{userRepo.NewMemoryUserRepo()}, id, welcome)

	_, err := svc.Register(ctx, validRequest())
	require.Error(t, err)
	assert.Equal(t, []string{"firebase-uid"}, id.deleted)
	assert.Empty(t, welcome.welcomed)
}

func TestExternalIdentity(t *testing.T) {
	ctx := context.Background()
	svc := NewDefaultUserService(userRepo.NewMemoryUserRepo(), tokenOnly{}, nil)

	resp, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "firebase-uid", resp.User.ID)

	_, err = svc.Login(ctx, "andy@example.com", "secret1", "")
	assert.ErrorIs(t, err, ErrLoginNotAvailable)

	u, err := svc.StartSession(ctx, "firebase-uid", models.UserTypeAthlete)
	require.NoError(t, err)
	assert.Equal(t, "Andy", u.FirstName)

	_, err = svc.StartSession(ctx, "firebase-uid", models.UserTypeCoach)
	assert.ErrorIs(t, err, ErrWrongAccountType)

	_, err = svc.StartSession(ctx, "unknown", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCoachesAndFCMToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	coachReq := validRequest()
	coachReq.Email = "carla@example.com"
	coachReq.UserType = "coach"
	coachReq.FirstName = "Carla"
	coachResp, err := svc.Register(ctx, coachReq)
	require.NoError(t, err)
	_, err = svc.Register(ctx, validRequest())
	require.NoError(t, err)

	coaches, err := svc.ListCoaches(ctx)
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.Equal(t, coachResp.User.ID, coaches[0].ID)
	assert.Equal(t, "Tennis", coaches[0].Sport)

	require.Error(t, svc.UpdateFCMToken(ctx, coachResp.User.ID, "  "))
	require.NoError(t, svc.UpdateFCMToken(ctx, coachResp.User.ID, "device-token"))
	u, err := svc.GetProfile(ctx, coachResp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token", u.FCMToken)

	assert.ErrorIs(t, svc.UpdateFCMToken(ctx, "ghost", "t"), ErrNotFound)
}
