package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"athletetech/models"
	"athletetech/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeliverer struct {
	emails    []models.EmailPayload
	pushes    []models.PushPayload
	reminders []models.ReminderPayload
	err       error
}

func (r *recordingDeliverer) DeliverEmail(_ context.Context, e models.EmailPayload) error {
	r.emails = append(r.emails, e)
	return r.err
}

func (r *recordingDeliverer) DeliverPush(_ context.Context, p models.PushPayload) error {
	r.pushes = append(r.pushes, p)
	return r.err
}

func (r *recordingDeliverer) DeliverReminder(_ context.Context, p models.ReminderPayload) error {
	r.reminders = append(r.reminders, p)
	return r.err
}

func TestServeMuxDispatchesTasks(t *testing.T) {
	d := &recordingDeliverer{}
	mux := NewServeMux(d)
	ctx := context.Background()

	email, err := tasks.NewEmailTask(models.EmailPayload{To: "a@b.com", Subject: "hi"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, email))

	push, err := tasks.NewPushTask(models.PushPayload{UserID: "u1", Title: "t"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, push))

	reminder, _, err := tasks.NewReminderTask(models.ReminderPayload{BookingID: "b1", UserID: "u1"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, reminder))

	require.Len(t, d.emails, 1)
	assert.Equal(t, "a@b.com", d.emails[0].To)
	require.Len(t, d.pushes, 1)
	assert.Equal(t, "u1", d.pushes[0].UserID)
	require.Len(t, d.reminders, 1)
	assert.Equal(t, "b1", d.reminders[0].BookingID)
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	mux := NewServeMux(&recordingDeliverer{})
	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSendEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestDeliveryErrorIsNotRetried(t *testing.T) {
	boom := errors.New("smtp down")
	mux := NewServeMux(&recordingDeliverer{err: boom})
	ctx := context.Background()

	email, err := tasks.NewEmailTask(models.EmailPayload{To: "a@b.com"})
	require.NoError(t, err)
	push, err := tasks.NewPushTask(models.PushPayload{UserID: "u1"})
	require.NoError(t, err)
	reminder, _, err := tasks.NewReminderTask(models.ReminderPayload{BookingID: "b1", UserID: "u1"}, time.Now())
	require.NoError(t, err)

	for _, task := range []*asynq.Task{email, push, reminder} {
		err := mux.ProcessTask(ctx, task)
		assert.ErrorIs(t, err, boom, task.Type())
		assert.ErrorIs(t, err, asynq.SkipRetry, task.Type())
	}
}
