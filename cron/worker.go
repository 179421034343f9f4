package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"athletetech/models"
	"athletetech/services/tasks"
	"athletetech/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Deliverer performs the side effects behind queued notification tasks.
type Deliverer interface {
	DeliverEmail(ctx context.Context, email models.EmailPayload) error
	DeliverPush(ctx context.Context, push models.PushPayload) error
	DeliverReminder(ctx context.Context, reminder models.ReminderPayload) error
}

// NewServeMux routes every notification task type to its handler.
func NewServeMux(d Deliverer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(d))
	mux.HandleFunc(tasks.TypeSendPush, handlePushTask(d))
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(d))
	return mux
}

// InitNotificationWorker starts the async worker in background. The caller
// owns shutdown of the returned server.
func InitNotificationWorker(d Deliverer, redisOpt asynq.RedisClientOpt) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewServeMux(d)

	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Notification worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleEmailTask(d Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := d.DeliverEmail(ctx, p); err != nil {
			utils.GetLogger().Warn("Email delivery failed", zap.String("to", p.To), zap.Error(err))
			return fmt.Errorf("email delivery failed: %w: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}

func handlePushTask(d Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid push payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := d.DeliverPush(ctx, p); err != nil {
			utils.GetLogger().Warn("Push delivery failed", zap.String("userId", p.UserID), zap.Error(err))
			return fmt.Errorf("push delivery failed: %w: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}

func handleReminderTask(d Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		utils.GetLogger().Info("Triggering session reminder",
			zap.String("bookingId", p.BookingID), zap.String("userId", p.UserID), zap.String("fireDate", p.FireDate))
		if err := d.DeliverReminder(ctx, p); err != nil {
			utils.GetLogger().Warn("Reminder delivery failed", zap.String("bookingId", p.BookingID), zap.Error(err))
			return fmt.Errorf("reminder delivery failed: %w: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}
