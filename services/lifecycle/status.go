// Package lifecycle holds the booking state machine, the session time
// classifier and the derived booking views. Nothing here performs I/O.
package lifecycle

import "fmt"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending           Status = "pending"
	StatusConfirmed         Status = "confirmed"
	StatusPendingCompletion Status = "pending_completion"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
)

// Action is something a participant attempts on a booking.
type Action string

const (
	ActionAccept            Action = "accept"
	ActionDecline           Action = "decline"
	ActionEmergencyCancel   Action = "emergency_cancel"
	ActionMarkComplete      Action = "mark_complete"
	ActionConfirmCompletion Action = "confirm_completion"
	ActionDelete            Action = "delete"
)

// Role is the acting participant's side of the booking.
type Role string

const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// Actor is the authenticated caller, passed explicitly to every decision.
type Actor struct {
	ID   string
	Role Role
	Name string
}

const (
	CancellationEmergency = "emergency"
	CancellationDeclined  = "declined"
)

var validStatuses = map[Status]bool{
	StatusPending:           true,
	StatusConfirmed:         true,
	StatusPendingCompletion: true,
	StatusCompleted:         true,
	StatusCancelled:         true,
}

// ParseStatus converts a stored status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", fmt.Errorf("invalid booking status: %q", s)
	}
	return st, nil
}

// IsTerminal reports whether no lifecycle action other than delete applies.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// String returns the stored representation.
func (s Status) String() string {
	return string(s)
}

// ParseAction converts an action name.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", fmt.Errorf("invalid booking action: %q", s)
	}
	return a, nil
}

// ParseRole converts a stored userType.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCoach, RoleAthlete:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid user type: %q", s)
}
