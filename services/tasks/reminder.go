package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"athletetech/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendEmail    = "email:send"
	TypeSendPush     = "push:send"
	TypeSendReminder = "reminder:send"
)

// NewEmailTask builds a single-attempt email delivery. A failed send is
// logged by the worker and archived, never retried.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email task: %w", err)
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(0)), nil
}

func NewPushTask(payload models.PushPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode push task: %w", err)
	}
	return asynq.NewTask(TypeSendPush, b, asynq.MaxRetry(0)), nil
}

// NewReminderTask builds a reminder processed at fireAt. The task id makes
// re-scheduling the same reminder a no-op.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode reminder task: %w", err)
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID + ":" + payload.UserID),
	}

	return task, opts, nil
}
