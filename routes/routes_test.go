package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "athletetech/database/repository/booking"
	userRepo "athletetech/database/repository/user"
	"athletetech/handlers"
	"athletetech/models"
	"athletetech/services/booking"
	"athletetech/services/identity"
	"athletetech/services/intelligence"
	"athletetech/services/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoGenerator struct{}

func (echoGenerator) GenerateContent(_ context.Context, prompt string, _ []models.AIMessage) (string, error) {
	return "# Coach says\n" + prompt, nil
}

type app struct {
	t      *testing.T
	router *gin.Engine
	now    time.Time
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	a := &app{t: t, now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}

	users := userRepo.NewMemoryUserRepo()
	id := identity.NewLocalIdentity(time.Hour)
	userSvc := user.NewDefaultUserService(users, id, nil)
	bookingSvc := booking.NewDefaultBookingService(bookingRepo.NewMemoryBookingRepo(), users, nil, time.UTC)
	bookingSvc.Now = func() time.Time { return a.now }
	aiSvc := intelligence.NewDefaultAssistantService(echoGenerator{}, intelligence.NewRedisContextStore(cache, intelligence.ChatTTL))

	uh := handlers.NewUserHandler(userSvc)
	bh := handlers.NewBookingHandler(bookingSvc)
	ah := handlers.NewAIHandler(aiSvc)
	hb := &handlers.HandlerBundle{
		Identity:          id,
		UserRepo:          users,
		AuthCache:         cache,
		MaxRequestsPerMin: 1000,

		RegisterUserHandler:   uh.RegisterUserHandler,
		LoginUserHandler:      uh.LoginUserHandler,
		StartSessionHandler:   uh.StartSessionHandler,
		GetProfileHandler:     uh.GetProfileHandler,
		UpdateFCMTokenHandler: uh.UpdateFCMTokenHandler,
		ListCoachesHandler:    uh.ListCoachesHandler,
		CoachSummaryHandler:   bh.CoachSummaryHandler,

		CreateBookingHandler:            bh.CreateBookingHandler,
		ListBookingsHandler:             bh.ListBookingsHandler,
		GetBookingHandler:               bh.GetBookingHandler,
		AcceptBookingHandler:            bh.AcceptBookingHandler,
		DeclineBookingHandler:           bh.DeclineBookingHandler,
		EmergencyCancelBookingHandler:   bh.EmergencyCancelBookingHandler,
		CompleteBookingHandler:          bh.CompleteBookingHandler,
		ConfirmCompletionBookingHandler: bh.ConfirmCompletionBookingHandler,
		DeleteBookingHandler:            bh.DeleteBookingHandler,

		AIChatHandler:          ah.ChatHandler,
		AIClearChatHandler:     ah.ClearChatHandler,
		AIWorkoutPlanHandler:   ah.WorkoutPlanHandler,
		AICareerRoadmapHandler: ah.CareerRoadmapHandler,

		HealthHandler: handlers.HealthHandler,
	}

	a.router = gin.New()
	RegisterRoutes(a.router, hb)
	return a
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) register(userType, email string) user.AuthResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/users/register", "", models.UserRegistrationRequest{
		Email: email, Password: "secret123", UserType: userType,
		FirstName: "Test", LastName: userType, Age: 25, Sport: "Tennis", Experience: "intermediate",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp user.AuthResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(a.t, resp.Token)
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	a := newApp(t)
	coach := a.register(models.UserTypeCoach, "coach@example.com")
	athlete := a.register(models.UserTypeAthlete, "athlete@example.com")

	coaches := decode[struct {
		Coaches []models.UserMinimal `json:"coaches"`
	}](t, a.do(http.MethodGet, "/api/coaches", athlete.Token, nil))
	require.Len(t, coaches.Coaches, 1)
	assert.Equal(t, coach.User.ID, coaches.Coaches[0].ID)

	w := a.do(http.MethodPost, "/api/bookings", athlete.Token, models.CreateBookingRequest{
		CoachID: coach.User.ID, Date: "2026-03-10", Time: "09:00", Duration: 60, IsVirtual: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Booking](t, w)
	assert.Equal(t, "pending", created.Status)
	path := "/api/bookings/" + created.ID

	// Only coaches may accept; a virtual session needs a link.
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, path+"/accept", athlete.Token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, path+"/accept", coach.Token, nil).Code)

	w = a.do(http.MethodPost, path+"/accept", coach.Token, models.BookingActionInput{MeetLink: "https://meet.example.com/abc"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode[models.Booking](t, w).Status)

	// Declining a confirmed booking is not a valid transition.
	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, path+"/decline", coach.Token, nil).Code)
	// The session has not happened yet.
	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, path+"/complete", coach.Token, nil).Code)

	list := decode[booking.BookingList](t, a.do(http.MethodGet, "/api/bookings", athlete.Token, nil))
	require.Len(t, list.Bookings, 1)
	require.Len(t, list.Views.Upcoming, 1)

	a.now = time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)

	w = a.do(http.MethodPost, path+"/complete", coach.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "pending_completion", decode[models.Booking](t, w).Status)

	w = a.do(http.MethodPost, path+"/confirm-completion", athlete.Token, models.BookingActionInput{Rating: 5, Feedback: "great"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode[models.Booking](t, w).Status)

	summary := decode[models.CoachSummary](t, a.do(http.MethodGet, "/api/coaches/"+coach.User.ID+"/summary", athlete.Token, nil))
	assert.Equal(t, 1, summary.Completed)
	assert.InDelta(t, 5.0, summary.AverageRating, 0.001)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodDelete, path, athlete.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, coach.Token, models.BookingActionInput{Confirmed: true}).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, athlete.Token, models.BookingActionInput{Confirmed: true}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, athlete.Token, nil).Code)
}

func TestBookingErrorsOverHTTP(t *testing.T) {
	a := newApp(t)
	coach := a.register(models.UserTypeCoach, "coach@example.com")
	athlete := a.register(models.UserTypeAthlete, "athlete@example.com")
	other := a.register(models.UserTypeAthlete, "other@example.com")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/bookings", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/bookings", coach.Token, models.CreateBookingRequest{}).Code)

	w := a.do(http.MethodPost, "/api/bookings", athlete.Token, models.CreateBookingRequest{
		CoachID: coach.User.ID, Date: "2026-02-01", Time: "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/bookings", athlete.Token, models.CreateBookingRequest{
		CoachID: coach.User.ID, Date: "2026-03-10", Time: "09:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Booking](t, w)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/bookings/"+created.ID, other.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/bookings/missing", athlete.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/coaches/"+athlete.User.ID+"/summary", athlete.Token, nil).Code)

	detail := decode[booking.BookingDetail](t, a.do(http.MethodGet, "/api/bookings/"+created.ID, coach.Token, nil))
	assert.Equal(t, "upcoming", detail.Phase)
	assert.NotEmpty(t, detail.Actions)
}

func TestUserRoutes(t *testing.T) {
	a := newApp(t)
	athlete := a.register(models.UserTypeAthlete, "athlete@example.com")

	w := a.do(http.MethodPost, "/api/users/register", "", models.UserRegistrationRequest{Email: "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "athlete@example.com", "password": "secret123", "userType": "coach",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "athlete@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/users/session", athlete.Token, map[string]string{"userType": "athlete"})
	assert.Equal(t, http.StatusOK, w.Code)

	me := decode[models.User](t, a.do(http.MethodGet, "/api/users/me", athlete.Token, nil))
	assert.Equal(t, "athlete@example.com", me.Email)

	w = a.do(http.MethodPut, "/api/users/me/fcm-token", athlete.Token, map[string]string{"token": "device-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAIRoutes(t *testing.T) {
	a := newApp(t)
	athlete := a.register(models.UserTypeAthlete, "athlete@example.com")

	w := a.do(http.MethodPost, "/api/ai/chat", athlete.Token, models.AIRequest{Message: "how do I taper?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[models.AIResponse](t, w).Response, "how do I taper?")

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/ai/chat", athlete.Token, models.AIRequest{}).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/ai/chat", athlete.Token, nil).Code)

	w = a.do(http.MethodPost, "/api/ai/workout-plan", athlete.Token, models.WorkoutPlanRequest{Sport: "Tennis", Level: "beginner", Goals: "speed"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodPost, "/api/ai/career-roadmap", athlete.Token, models.CareerRoadmapRequest{Sport: "Tennis"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
