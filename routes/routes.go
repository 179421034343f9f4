package routes

import (
	"time"

	"athletetech/handlers"
	"athletetech/middleware"
	"athletetech/services/lifecycle"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers signup, sign-in and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginUserHandler)

		// The session route only needs a verified token; the profile is checked by the handler.
		api.POST("/session", middleware.TokenMiddleware(hb.Identity), hb.StartSessionHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Identity, hb.UserRepo, hb.AuthCache))
		protected.GET("/me", hb.GetProfileHandler)
		protected.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterCoachRoutes registers the coach directory.
func RegisterCoachRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/coaches")
	{
		api.Use(middleware.AuthMiddleware(hb.Identity, hb.UserRepo, hb.AuthCache))
		api.GET("", hb.ListCoachesHandler)
		api.GET("/:id/summary", hb.CoachSummaryHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	coach := middleware.RequireRole(lifecycle.RoleCoach)
	athlete := middleware.RequireRole(lifecycle.RoleAthlete)

	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.Identity, hb.UserRepo, hb.AuthCache))
		api.POST("", athlete, hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)

		api.POST("/:id/accept", coach, hb.AcceptBookingHandler)
		api.POST("/:id/decline", coach, hb.DeclineBookingHandler)
		api.POST("/:id/emergency-cancel", coach, hb.EmergencyCancelBookingHandler)
		api.POST("/:id/complete", coach, hb.CompleteBookingHandler)

		api.POST("/:id/confirm-completion", athlete, hb.ConfirmCompletionBookingHandler)
		api.DELETE("/:id", athlete, hb.DeleteBookingHandler)
	}
}

// RegisterAIRoutes registers AI assistant endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.AuthMiddleware(hb.Identity, hb.UserRepo, hb.AuthCache))
		api.POST("/chat", hb.AIChatHandler)
		api.DELETE("/chat", hb.AIClearChatHandler)
		api.POST("/workout-plan", hb.AIWorkoutPlanHandler)
		api.POST("/career-roadmap", hb.AICareerRoadmapHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCoachRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAIRoutes(r, hb)
}
