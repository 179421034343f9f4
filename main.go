package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"athletetech/config"
	"athletetech/cron"
	"athletetech/database"
	"athletetech/database/repository"
	"athletetech/handlers"
	"athletetech/middleware"
	"athletetech/routes"
	"athletetech/services/booking"
	"athletetech/services/identity"
	"athletetech/services/intelligence"
	"athletetech/services/notification"
	"athletetech/services/user"
	"athletetech/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Firebase backs the firebase auth mode, the Firestore store and push.
	needFirebase := cfg.AuthMode == config.AuthFirebase || cfg.StoreBackend == config.StoreFirestore
	if needFirebase || cfg.FirebaseCredentialsFile != "" {
		if err := utils.FirebaseInit(ctx); err != nil {
			if needFirebase {
				logger.Fatal("main: failed to initialize firebase", zap.Error(err))
			}
			logger.Warn("main: firebase unavailable, push notifications disabled", zap.Error(err))
		}
	}

	switch cfg.StoreBackend {
	case config.StoreMongo:
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to initialize MongoDB", zap.Error(err))
		}
	case config.StoreFirestore:
		if err := database.InitFirestore(ctx); err != nil {
			logger.Fatal("main: failed to initialize Firestore", zap.Error(err))
		}
	}
	repos, err := repository.New()
	if err != nil {
		logger.Fatal("main: failed to build repositories", zap.Error(err))
	}

	if err := utils.InitCache(); err != nil {
		logger.Fatal("main: failed to initialize cache", zap.Error(err))
	}
	if err := utils.InitAuthCache(); err != nil {
		logger.Fatal("main: failed to initialize auth cache", zap.Error(err))
	}

	queue := asynq.NewClient(utils.QueueRedisOpt())
	defer queue.Close()

	var mailer notification.Mailer = notification.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	}
	var pusher notification.Pusher
	if utils.FCMClient != nil {
		pusher = notification.NewFCMPusher(utils.FCMClient)
	}
	notificationService, err := notification.NewDefaultNotificationService(
		repos.Users, repos.Bookings, queue, mailer, pusher,
		notification.Config{
			DashboardBaseURL: cfg.DashboardBaseURL,
			ReminderLead:     config.ReminderLead(),
			Location:         config.VenueLocation(),
		},
	)
	if err != nil {
		logger.Fatal("main: failed to initialize notifications", zap.Error(err))
	}
	worker := cron.InitNotificationWorker(notificationService, utils.QueueRedisOpt())

	var id identity.Identity
	if cfg.AuthMode == config.AuthFirebase {
		id = identity.NewFirebaseIdentity(utils.AuthClient)
	} else {
		id = identity.NewLocalIdentity(utils.LocalTokenTTL)
	}

	// services.
	userService := user.NewDefaultUserService(repos.Users, id, notificationService)
	bookingService := booking.NewDefaultBookingService(repos.Bookings, repos.Users, notificationService, config.VenueLocation())

	var generator intelligence.Generator
	gemini, err := intelligence.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("main: AI assistant unavailable", zap.Error(err))
		generator = intelligence.Unavailable(intelligence.ErrInvalidAPIKey)
	} else {
		defer gemini.Close()
		generator = gemini
	}
	aiService := intelligence.NewDefaultAssistantService(generator,
		intelligence.NewRedisContextStore(utils.CacheClient, intelligence.ChatTTL))

	utils.StartHealthMonitor(ctx, cfg.StoreBackend,
		[]*redis.Client{utils.CacheClient, utils.AuthCacheClient}, database.MongoClient)

	userHandler := handlers.NewUserHandler(userService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	aiHandler := handlers.NewAIHandler(aiService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Identity:          id,
		UserRepo:          repos.Users,
		AuthCache:         utils.AuthCacheClient,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,

		// User endpoints.
		RegisterUserHandler:   userHandler.RegisterUserHandler,
		LoginUserHandler:      userHandler.LoginUserHandler,
		StartSessionHandler:   userHandler.StartSessionHandler,
		GetProfileHandler:     userHandler.GetProfileHandler,
		UpdateFCMTokenHandler: userHandler.UpdateFCMTokenHandler,
		ListCoachesHandler:    userHandler.ListCoachesHandler,
		CoachSummaryHandler:   bookingHandler.CoachSummaryHandler,

		// Booking endpoints.
		CreateBookingHandler:            bookingHandler.CreateBookingHandler,
		ListBookingsHandler:             bookingHandler.ListBookingsHandler,
		GetBookingHandler:               bookingHandler.GetBookingHandler,
		AcceptBookingHandler:            bookingHandler.AcceptBookingHandler,
		DeclineBookingHandler:           bookingHandler.DeclineBookingHandler,
		EmergencyCancelBookingHandler:   bookingHandler.EmergencyCancelBookingHandler,
		CompleteBookingHandler:          bookingHandler.CompleteBookingHandler,
		ConfirmCompletionBookingHandler: bookingHandler.ConfirmCompletionBookingHandler,
		DeleteBookingHandler:            bookingHandler.DeleteBookingHandler,

		// AI endpoints.
		AIChatHandler:          aiHandler.ChatHandler,
		AIClearChatHandler:     aiHandler.ClearChatHandler,
		AIWorkoutPlanHandler:   aiHandler.WorkoutPlanHandler,
		AICareerRoadmapHandler: aiHandler.CareerRoadmapHandler,

		HealthHandler: handlers.HealthHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", cfg.StoreBackend),
		zap.String("authMode", cfg.AuthMode))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	database.Close(shutdownCtx)

	logger.Info("main: server stopped gracefully")
}
