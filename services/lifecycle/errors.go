package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrNotParticipant is returned when the actor is not the booking's coach or athlete.
	ErrNotParticipant = errors.New("you are not a participant of this booking")
	// ErrWrongRole is returned when the action belongs to the other side.
	ErrWrongRole = errors.New("this action is not available for your account type")
)

// ValidationError is a missing or malformed input. The caller re-prompts; nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// TransitionError is an action attempted from a state that does not allow it.
type TransitionError struct {
	From   Status
	Action Action
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s a %s booking: %s", humanAction(e.Action), humanStatus(e.From), e.Reason)
	}
	return fmt.Sprintf("cannot %s a %s booking", humanAction(e.Action), humanStatus(e.From))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransition reports whether err is a TransitionError.
func IsTransition(err error) bool {
	var t *TransitionError
	return errors.As(err, &t)
}

func humanAction(a Action) string {
	switch a {
	case ActionEmergencyCancel:
		return "emergency-cancel"
	case ActionMarkComplete:
		return "mark complete"
	case ActionConfirmCompletion:
		return "confirm completion of"
	}
	return string(a)
}

func humanStatus(s Status) string {
	if s == StatusPendingCompletion {
		return "pending completion"
	}
	return string(s)
}
