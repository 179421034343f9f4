package lifecycle

import (
	"errors"
	"testing"
	"time"

	"athletetech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var venue = time.FixedZone("venue", 3*60*60)

var (
	coach   = Actor{ID: "coach-1", Role: RoleCoach, Name: "Carla Coach"}
	athlete = Actor{ID: "athlete-1", Role: RoleAthlete, Name: "Andy Athlete"}
)

func at(date, clock string) time.Time {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, venue)
	if err != nil {
		panic(err)
	}
	return t
}

func newBooking(virtual bool, status Status) *models.Booking {
	created := at("2026-03-01", "12:00")
	return &models.Booking{
		ID:          "b-1",
		CoachID:     coach.ID,
		CoachName:   coach.Name,
		AthleteID:   athlete.ID,
		AthleteName: athlete.Name,
		Date:        "2026-03-10",
		Time:        "09:00",
		Duration:    60,
		IsVirtual:   virtual,
		Status:      string(status),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// act decides and applies the decision the way a store would.
func act(t *testing.T, b *models.Booking, actor Actor, action Action, in models.BookingActionInput, now time.Time) Decision {
	t.Helper()
	d, err := Decide(b, actor, action, in, now, venue)
	require.NoError(t, err)
	require.True(t, d.Guard.Matches(b))
	d.Update.Apply(b)
	require.NoError(t, CheckInvariants(b))
	return d
}

func TestAcceptInPersonSession(t *testing.T) {
	b := newBooking(false, StatusPending)
	now := at("2026-03-02", "08:00")

	d := act(t, b, coach, ActionAccept, models.BookingActionInput{}, now)

	assert.Equal(t, StatusPending, d.From)
	assert.Equal(t, StatusConfirmed, d.To)
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.Empty(t, b.MeetLink)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestAcceptVirtualSessionRequiresLink(t *testing.T) {
	b := newBooking(true, StatusPending)
	now := at("2026-03-02", "08:00")

	_, err := Decide(b, coach, ActionAccept, models.BookingActionInput{}, now, venue)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, string(StatusPending), b.Status)

	_, err = Decide(b, coach, ActionAccept, models.BookingActionInput{MeetLink: "not a link"}, now, venue)
	assert.True(t, IsValidation(err))

	d := act(t, b, coach, ActionAccept, models.BookingActionInput{MeetLink: " https://meet.example.com/abc "}, now)
	require.NotNil(t, d.Update.MeetLink)
	require.NotNil(t, d.Update.Status)
	assert.Equal(t, "https://meet.example.com/abc", b.MeetLink)
	assert.Equal(t, string(StatusConfirmed), b.Status)
}

func TestAcceptRejectsLinkForInPersonSession(t *testing.T) {
	b := newBooking(false, StatusPending)
	_, err := Decide(b, coach, ActionAccept, models.BookingActionInput{MeetLink: "https://meet.example.com/x"}, at("2026-03-02", "08:00"), venue)
	assert.True(t, IsValidation(err))
}

func TestDecline(t *testing.T) {
	b := newBooking(false, StatusPending)
	act(t, b, coach, ActionDecline, models.BookingActionInput{}, at("2026-03-02", "08:00"))

	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, CancellationDeclined, b.CancellationType)
	assert.Equal(t, string(RoleCoach), b.CancelledBy)
}

func TestEmergencyCancel(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	now := at("2026-03-09", "20:00")

	_, err := Decide(b, coach, ActionEmergencyCancel, models.BookingActionInput{Reason: "   "}, now, venue)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	act(t, b, coach, ActionEmergencyCancel, models.BookingActionInput{Reason: "injury"}, now)
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, CancellationEmergency, b.CancellationType)
	assert.Equal(t, "injury", b.CancellationReason)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)
	assert.Equal(t, "coach", b.CancelledBy)
}

func TestCoachCompletesFirstThenAthleteConfirms(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	afterSession := at("2026-03-10", "10:30")

	d := act(t, b, coach, ActionMarkComplete, models.BookingActionInput{}, afterSession)
	assert.Equal(t, StatusPendingCompletion, d.To)
	assert.True(t, b.CompletedByCoach)
	assert.NotNil(t, b.CompletedByCoachAt)
	assert.Nil(t, b.CompletedAt)

	d = act(t, b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 4, Feedback: "great drills"}, afterSession.Add(time.Hour))
	assert.Equal(t, StatusCompleted, d.To)
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, 4, b.Rating)
	assert.Equal(t, "great drills", b.Feedback)
}

func TestAthleteConfirmsFirstThenCoachCompletes(t *testing.T) {
	b := newBooking(false, StatusConfirmed)

	act(t, b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 5}, at("2026-03-10", "09:30"))
	assert.Equal(t, string(StatusPendingCompletion), b.Status)
	assert.True(t, b.CompletedByAthlete)
	assert.False(t, b.CompletedByCoach)

	d := act(t, b, coach, ActionMarkComplete, models.BookingActionInput{}, at("2026-03-10", "11:00"))
	assert.Equal(t, StatusPendingCompletion, d.From)
	assert.Equal(t, StatusCompleted, d.To)
	assert.NotNil(t, b.CompletedAt)
	assert.Equal(t, 5, b.Rating)
}

func TestConfirmCompletionIsNotRepeatable(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	now := at("2026-03-10", "11:00")
	act(t, b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 3}, now)
	before := *b

	_, err := Decide(b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 1}, now.Add(time.Minute), venue)
	require.Error(t, err)
	assert.True(t, IsTransition(err))
	assert.Equal(t, before, *b)

	act(t, b, coach, ActionMarkComplete, models.BookingActionInput{}, now)
	_, err = Decide(b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 1}, now, venue)
	assert.True(t, IsTransition(err))
	assert.Equal(t, 3, b.Rating)
}

func TestMarkCompleteRequiresFinishedSession(t *testing.T) {
	b := newBooking(false, StatusConfirmed)

	for _, now := range []time.Time{
		at("2026-03-10", "08:59"),
		at("2026-03-10", "09:00"),
		at("2026-03-10", "10:00"), // end is inclusive in the ongoing phase
	} {
		_, err := Decide(b, coach, ActionMarkComplete, models.BookingActionInput{}, now, venue)
		require.Error(t, err, now)
		assert.True(t, IsTransition(err))
	}

	_, err := Decide(b, coach, ActionMarkComplete, models.BookingActionInput{}, at("2026-03-10", "10:01"), venue)
	assert.NoError(t, err)
}

func TestMarkCompleteTwiceIsRejected(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	now := at("2026-03-11", "09:00")
	act(t, b, coach, ActionMarkComplete, models.BookingActionInput{}, now)

	_, err := Decide(b, coach, ActionMarkComplete, models.BookingActionInput{}, now, venue)
	assert.True(t, IsTransition(err))
}

func TestConfirmCompletionRatingRange(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	now := at("2026-03-11", "09:00")
	for _, rating := range []int{0, -1, 6} {
		_, err := Decide(b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: rating}, now, venue)
		assert.True(t, IsValidation(err), "rating %d", rating)
	}
}

func TestNoDirectJumpFromPendingToCompleted(t *testing.T) {
	b := newBooking(false, StatusPending)
	now := at("2026-03-11", "09:00")

	_, err := Decide(b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 5}, now, venue)
	assert.True(t, IsTransition(err))
	_, err = Decide(b, coach, ActionMarkComplete, models.BookingActionInput{}, now, venue)
	assert.True(t, IsTransition(err))
}

func TestInvalidTransitionsFromWrongState(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		actor  Actor
		action Action
	}{
		{"accept confirmed", StatusConfirmed, coach, ActionAccept},
		{"decline confirmed", StatusConfirmed, coach, ActionDecline},
		{"emergency cancel pending", StatusPending, coach, ActionEmergencyCancel},
		{"mark complete cancelled", StatusCancelled, coach, ActionMarkComplete},
		{"accept cancelled", StatusCancelled, coach, ActionAccept},
		{"delete confirmed", StatusConfirmed, athlete, ActionDelete},
		{"delete cancelled", StatusCancelled, athlete, ActionDelete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(false, tt.status)
			_, err := Decide(b, tt.actor, tt.action, models.BookingActionInput{Confirmed: true, Reason: "x"}, at("2026-03-11", "09:00"), venue)
			require.Error(t, err)
			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.status, te.From)
			assert.Equal(t, tt.action, te.Action)
		})
	}
}

func TestActorChecks(t *testing.T) {
	b := newBooking(false, StatusPending)
	now := at("2026-03-02", "08:00")

	_, err := Decide(b, athlete, ActionAccept, models.BookingActionInput{}, now, venue)
	assert.ErrorIs(t, err, ErrWrongRole)

	stranger := Actor{ID: "coach-2", Role: RoleCoach}
	_, err = Decide(b, stranger, ActionAccept, models.BookingActionInput{}, now, venue)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = Decide(b, Actor{Role: RoleCoach}, ActionAccept, models.BookingActionInput{}, now, venue)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestDeleteCompletedBooking(t *testing.T) {
	b := newBooking(false, StatusConfirmed)
	now := at("2026-03-11", "09:00")
	act(t, b, coach, ActionMarkComplete, models.BookingActionInput{}, now)
	act(t, b, athlete, ActionConfirmCompletion, models.BookingActionInput{Rating: 4}, now)

	_, err := Decide(b, athlete, ActionDelete, models.BookingActionInput{}, now, venue)
	assert.True(t, IsValidation(err))

	_, err = Decide(b, coach, ActionDelete, models.BookingActionInput{Confirmed: true}, now, venue)
	assert.ErrorIs(t, err, ErrWrongRole)

	d, err := Decide(b, athlete, ActionDelete, models.BookingActionInput{Confirmed: true}, now, venue)
	require.NoError(t, err)
	assert.True(t, d.Delete)
	assert.Equal(t, models.GuardOf(b), d.Guard)
}

func TestAllowed(t *testing.T) {
	b := newBooking(false, StatusPending)
	assert.Equal(t, []Action{ActionAccept, ActionDecline}, Allowed(b, coach))
	assert.Empty(t, Allowed(b, athlete))

	b.Status = string(StatusPendingCompletion)
	b.CompletedByCoach = true
	assert.Empty(t, Allowed(b, coach))
	assert.Equal(t, []Action{ActionConfirmCompletion}, Allowed(b, athlete))

	assert.Empty(t, Allowed(b, Actor{ID: "someone", Role: RoleAthlete}))
}

func TestParseStatusAndAction(t *testing.T) {
	s, err := ParseStatus("pending_completion")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingCompletion, s)
	_, err = ParseStatus("done")
	assert.Error(t, err)

	a, err := ParseAction("emergency_cancel")
	require.NoError(t, err)
	assert.Equal(t, ActionEmergencyCancel, a)
	_, err = ParseAction("archive")
	assert.Error(t, err)

	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPendingCompletion.IsTerminal())
}

func TestCheckInvariantsDetectsViolations(t *testing.T) {
	b := newBooking(true, StatusConfirmed)
	assert.Error(t, CheckInvariants(b), "virtual confirmed without link")

	b = newBooking(false, StatusCompleted)
	assert.Error(t, CheckInvariants(b), "completed without flags")

	b = newBooking(false, StatusCancelled)
	b.CancellationType = CancellationEmergency
	assert.Error(t, CheckInvariants(b), "emergency without reason")

	b = newBooking(false, StatusPending)
	assert.NoError(t, CheckInvariants(b))
}
