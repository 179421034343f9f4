// Package notification tells users about their account and bookings by
// email and push. Senders enqueue asynq tasks; the worker in cron delivers them.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "athletetech/database/repository/booking"
	userRepo "athletetech/database/repository/user"
	"athletetech/models"
	"athletetech/services/lifecycle"
	"athletetech/services/tasks"
	"athletetech/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService is what the user and booking services call after a
// committed change. Failures are logged, never returned.
type NotificationService interface {
	SendWelcome(ctx context.Context, user *models.User)
	NotifyBooking(ctx context.Context, booking *models.Booking, event string)
	ScheduleReminders(ctx context.Context, booking *models.Booking)
}

// Config tunes message links and reminder timing.
type Config struct {
	DashboardBaseURL string
	ReminderLead     time.Duration
	Location         *time.Location
}

// DefaultNotificationService enqueues deliveries and, on the worker side,
// performs them.
type DefaultNotificationService struct {
	users    userRepo.UserRepository
	bookings bookingRepo.BookingRepository
	queue    Enqueuer
	mailer   Mailer
	pusher   Pusher
	cfg      Config
	now      func() time.Time
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	bookings bookingRepo.BookingRepository,
	queue Enqueuer,
	mailer Mailer,
	pusher Pusher,
	cfg Config,
) (*DefaultNotificationService, error) {
	if users == nil || bookings == nil || queue == nil {
		return nil, fmt.Errorf("notification service initialization error: repositories and queue are required")
	}
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &DefaultNotificationService{
		users:    users,
		bookings: bookings,
		queue:    queue,
		mailer:   mailer,
		pusher:   pusher,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

func (s *DefaultNotificationService) SendWelcome(ctx context.Context, user *models.User) {
	email, err := WelcomeEmail(user, s.cfg.DashboardBaseURL)
	if err != nil {
		utils.GetLogger().Error("welcome email not rendered", zap.String("userId", user.ID), zap.Error(err))
		return
	}
	s.enqueueEmail(ctx, email)
}

func (s *DefaultNotificationService) NotifyBooking(ctx context.Context, booking *models.Booking, event string) {
	logger := utils.GetLogger().With(zap.String("bookingId", booking.ID), zap.String("event", event))

	msg, ok := messageFor(booking, event)
	if !ok {
		return
	}

	push, err := tasks.NewPushTask(models.PushPayload{
		UserID: msg.recipientID,
		Title:  msg.title,
		Body:   msg.body,
		Data: map[string]string{
			"type":      "booking",
			"bookingId": booking.ID,
			"status":    booking.Status,
		},
	})
	if err == nil {
		_, err = s.queue.EnqueueContext(ctx, push)
	}
	if err != nil {
		logger.Warn("booking push not queued", zap.Error(err))
	}

	recipient, err := s.users.GetByID(ctx, msg.recipientID)
	if err != nil {
		logger.Warn("booking email recipient not found", zap.String("userId", msg.recipientID), zap.Error(err))
		return
	}
	email, err := NotificationEmail(recipient.Email, msg.title, msg.body)
	if err != nil {
		logger.Error("booking email not rendered", zap.Error(err))
		return
	}
	s.enqueueEmail(ctx, email)
}

// ScheduleReminders queues a reminder for both participants ReminderLead
// before the session starts. Sessions already started get none.
func (s *DefaultNotificationService) ScheduleReminders(ctx context.Context, booking *models.Booking) {
	logger := utils.GetLogger().With(zap.String("bookingId", booking.ID))

	start, err := lifecycle.ScheduleOf(booking).Start(s.cfg.Location)
	if err != nil {
		logger.Warn("reminder not scheduled", zap.Error(err))
		return
	}
	now := s.now()
	if !start.After(now) {
		return
	}
	fireAt := start.Add(-s.cfg.ReminderLead)
	if fireAt.Before(now) {
		fireAt = now
	}

	for _, userID := range []string{booking.AthleteID, booking.CoachID} {
		payload := models.ReminderPayload{
			BookingID: booking.ID,
			UserID:    userID,
			Title:     "Upcoming session",
			Body:      fmt.Sprintf("Your session starts at %s on %s.", booking.Time, booking.Date),
			FireDate:  fireAt.Format(time.RFC3339),
		}
		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err == nil {
			_, err = s.queue.EnqueueContext(ctx, task, opts...)
		}
		if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Warn("reminder not queued", zap.String("userId", userID), zap.Error(err))
		}
	}
}

func (s *DefaultNotificationService) enqueueEmail(ctx context.Context, email models.EmailPayload) {
	task, err := tasks.NewEmailTask(email)
	if err == nil {
		_, err = s.queue.EnqueueContext(ctx, task)
	}
	if err != nil {
		utils.GetLogger().Warn("email not queued", zap.String("to", email.To), zap.Error(err))
	}
}

// DeliverEmail is run by the worker for email:send tasks.
func (s *DefaultNotificationService) DeliverEmail(ctx context.Context, email models.EmailPayload) error {
	return s.mailer.Send(ctx, email)
}

// DeliverPush is run by the worker for push:send tasks. Users without a
// device token are skipped.
func (s *DefaultNotificationService) DeliverPush(ctx context.Context, push models.PushPayload) error {
	if s.pusher == nil {
		return nil
	}
	u, err := s.users.GetByID(ctx, push.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("DeliverPush: could not load user %s: %w", push.UserID, err)
	}
	if u.FCMToken == "" {
		utils.GetLogger().Debug("push skipped, no FCM token", zap.String("userId", push.UserID))
		return nil
	}
	return s.pusher.Push(ctx, u.FCMToken, push)
}

// DeliverReminder is run by the worker for reminder:send tasks. Bookings
// that were cancelled or removed in the meantime are skipped.
func (s *DefaultNotificationService) DeliverReminder(ctx context.Context, reminder models.ReminderPayload) error {
	b, err := s.bookings.GetByID(ctx, reminder.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("DeliverReminder: could not load booking %s: %w", reminder.BookingID, err)
	}
	if b.Status != string(lifecycle.StatusConfirmed) {
		return nil
	}
	return s.DeliverPush(ctx, models.PushPayload{
		UserID: reminder.UserID,
		Title:  reminder.Title,
		Body:   reminder.Body,
		Data: map[string]string{
			"type":      "reminder",
			"bookingId": reminder.BookingID,
			"fireDate":  reminder.FireDate,
		},
	})
}
