package handlers

import (
	userRepo "athletetech/database/repository/user"
	"athletetech/services/identity"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers and what the route middleware needs.
type HandlerBundle struct {
	Identity  identity.Identity
	UserRepo  userRepo.UserRepository
	AuthCache *redis.Client
	// MaxRequestsPerMin is the per-IP rate limit.
	MaxRequestsPerMin int

	// User endpoints
	RegisterUserHandler   gin.HandlerFunc
	LoginUserHandler      gin.HandlerFunc
	StartSessionHandler   gin.HandlerFunc
	GetProfileHandler     gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc
	ListCoachesHandler    gin.HandlerFunc
	CoachSummaryHandler   gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler            gin.HandlerFunc
	ListBookingsHandler             gin.HandlerFunc
	GetBookingHandler               gin.HandlerFunc
	AcceptBookingHandler            gin.HandlerFunc
	DeclineBookingHandler           gin.HandlerFunc
	EmergencyCancelBookingHandler   gin.HandlerFunc
	CompleteBookingHandler          gin.HandlerFunc
	ConfirmCompletionBookingHandler gin.HandlerFunc
	DeleteBookingHandler            gin.HandlerFunc

	// AI endpoints
	AIChatHandler          gin.HandlerFunc
	AIClearChatHandler     gin.HandlerFunc
	AIWorkoutPlanHandler   gin.HandlerFunc
	AICareerRoadmapHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
