package lifecycle

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"athletetech/models"
)

// Decision is the outcome of a permitted action: the target state, the
// field-level update to persist and the guard to persist it under.
type Decision struct {
	Action Action
	From   Status
	To     Status
	Update models.BookingUpdate
	Guard  models.BookingGuard
	Delete bool
}

type decideFunc func(b *models.Booking, actor Actor, in models.BookingActionInput, now time.Time, loc *time.Location) (Decision, error)

type rule struct {
	role   Role
	from   []Status
	decide decideFunc
}

// transitions is the full lifecycle table. Anything not listed is rejected.
var transitions = map[Action]rule{
	ActionAccept:            {role: RoleCoach, from: []Status{StatusPending}, decide: decideAccept},
	ActionDecline:           {role: RoleCoach, from: []Status{StatusPending}, decide: decideDecline},
	ActionEmergencyCancel:   {role: RoleCoach, from: []Status{StatusConfirmed}, decide: decideEmergencyCancel},
	ActionMarkComplete:      {role: RoleCoach, from: []Status{StatusConfirmed, StatusPendingCompletion}, decide: decideMarkComplete},
	ActionConfirmCompletion: {role: RoleAthlete, from: []Status{StatusConfirmed, StatusPendingCompletion}, decide: decideConfirmCompletion},
	ActionDelete:            {role: RoleAthlete, from: []Status{StatusCompleted}, decide: decideDelete},
}

// Allowed lists the actions actor may attempt on b right now, ignoring
// guard inputs and time. Used to render the available buttons.
func Allowed(b *models.Booking, actor Actor) []Action {
	from, err := ParseStatus(b.Status)
	if err != nil || checkParticipant(b, actor) != nil {
		return nil
	}
	var out []Action
	for _, a := range []Action{ActionAccept, ActionDecline, ActionEmergencyCancel, ActionMarkComplete, ActionConfirmCompletion, ActionDelete} {
		r := transitions[a]
		if r.role != actor.Role || !contains(r.from, from) {
			continue
		}
		if a == ActionMarkComplete && b.CompletedByCoach {
			continue
		}
		if a == ActionConfirmCompletion && b.CompletedByAthlete {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Decide validates action on b by actor and computes the resulting update.
// It never mutates b.
func Decide(b *models.Booking, actor Actor, action Action, in models.BookingActionInput, now time.Time, loc *time.Location) (Decision, error) {
	r, ok := transitions[action]
	if !ok {
		return Decision{}, fmt.Errorf("invalid booking action: %q", action)
	}
	from, err := ParseStatus(b.Status)
	if err != nil {
		return Decision{}, err
	}
	if err := checkParticipant(b, actor); err != nil {
		return Decision{}, err
	}
	if actor.Role != r.role {
		return Decision{}, ErrWrongRole
	}
	if !contains(r.from, from) {
		return Decision{}, &TransitionError{From: from, Action: action}
	}

	d, err := r.decide(b, actor, in, now, loc)
	if err != nil {
		return Decision{}, err
	}
	d.Action = action
	d.From = from
	d.Guard = models.GuardOf(b)
	if !d.Delete {
		d.Update.UpdatedAt = &now
	}
	return d, nil
}

func decideAccept(b *models.Booking, _ Actor, in models.BookingActionInput, _ time.Time, _ *time.Location) (Decision, error) {
	link := strings.TrimSpace(in.MeetLink)
	d := Decision{To: StatusConfirmed}
	if b.IsVirtual {
		if link == "" {
			return Decision{}, invalid("meetLink", "a meeting link is required to confirm a virtual session")
		}
		if err := validateMeetLink(link); err != nil {
			return Decision{}, err
		}
		d.Update.MeetLink = &link
	} else if link != "" {
		return Decision{}, invalid("meetLink", "meeting links only apply to virtual sessions")
	}
	d.Update.Status = statusPtr(StatusConfirmed)
	return d, nil
}

func decideDecline(_ *models.Booking, actor Actor, _ models.BookingActionInput, now time.Time, _ *time.Location) (Decision, error) {
	d := Decision{To: StatusCancelled}
	d.Update.Status = statusPtr(StatusCancelled)
	d.Update.CancellationType = strPtr(CancellationDeclined)
	d.Update.CancelledAt = &now
	d.Update.CancelledBy = strPtr(string(actor.Role))
	return d, nil
}

func decideEmergencyCancel(_ *models.Booking, actor Actor, in models.BookingActionInput, now time.Time, _ *time.Location) (Decision, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return Decision{}, invalid("reason", "please provide a reason for the emergency cancellation")
	}
	d := Decision{To: StatusCancelled}
	d.Update.Status = statusPtr(StatusCancelled)
	d.Update.CancellationType = strPtr(CancellationEmergency)
	d.Update.CancellationReason = &reason
	d.Update.CancelledAt = &now
	d.Update.CancelledBy = strPtr(string(actor.Role))
	return d, nil
}

func decideMarkComplete(b *models.Booking, _ Actor, _ models.BookingActionInput, now time.Time, loc *time.Location) (Decision, error) {
	from := Status(b.Status)
	if b.CompletedByCoach {
		return Decision{}, &TransitionError{From: from, Action: ActionMarkComplete, Reason: "you have already marked this session as completed"}
	}
	phase, err := ScheduleOf(b).Classify(now, loc)
	if err != nil {
		return Decision{}, err
	}
	if phase != PhaseFinished {
		return Decision{}, &TransitionError{From: from, Action: ActionMarkComplete, Reason: "the session has not finished yet"}
	}

	d := Decision{To: StatusPendingCompletion}
	d.Update.CompletedByCoach = boolPtr(true)
	d.Update.CompletedByCoachAt = &now
	if b.CompletedByAthlete {
		d.To = StatusCompleted
		d.Update.CompletedAt = &now
	}
	d.Update.Status = statusPtr(d.To)
	return d, nil
}

func decideConfirmCompletion(b *models.Booking, _ Actor, in models.BookingActionInput, now time.Time, _ *time.Location) (Decision, error) {
	if b.CompletedByAthlete {
		return Decision{}, &TransitionError{From: Status(b.Status), Action: ActionConfirmCompletion, Reason: "you have already confirmed this session"}
	}
	if in.Rating < 1 || in.Rating > 5 {
		return Decision{}, invalid("rating", "please rate the session from 1 to 5")
	}
	rating := in.Rating
	feedback := strings.TrimSpace(in.Feedback)

	d := Decision{To: StatusPendingCompletion}
	d.Update.CompletedByAthlete = boolPtr(true)
	d.Update.CompletedByAthleteAt = &now
	d.Update.Rating = &rating
	d.Update.Feedback = &feedback
	if b.CompletedByCoach {
		d.To = StatusCompleted
		d.Update.CompletedAt = &now
	}
	d.Update.Status = statusPtr(d.To)
	return d, nil
}

func decideDelete(_ *models.Booking, _ Actor, in models.BookingActionInput, _ time.Time, _ *time.Location) (Decision, error) {
	if !in.Confirmed {
		return Decision{}, invalid("confirm", "please confirm that you want to delete this booking")
	}
	return Decision{Delete: true}, nil
}

func checkParticipant(b *models.Booking, actor Actor) error {
	switch actor.Role {
	case RoleCoach:
		if actor.ID != "" && actor.ID == b.CoachID {
			return nil
		}
	case RoleAthlete:
		if actor.ID != "" && actor.ID == b.AthleteID {
			return nil
		}
	}
	return ErrNotParticipant
}

func validateMeetLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid("meetLink", "please enter a valid http(s) meeting link")
	}
	return nil
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func statusPtr(s Status) *string {
	v := string(s)
	return &v
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
