package notification

import (
	"fmt"

	"athletetech/models"
	"athletetech/services/lifecycle"
)

// EventCreated is the booking event sent when an athlete requests a session.
const EventCreated = "created"

type bookingMessage struct {
	recipientID string
	title       string
	body        string
}

// messageFor returns what the counterpart of event is told, if anything.
func messageFor(b *models.Booking, event string) (bookingMessage, bool) {
	when := fmt.Sprintf("%s at %s", b.Date, b.Time)
	switch event {
	case EventCreated:
		return bookingMessage{b.CoachID, "New session request",
			fmt.Sprintf("%s requested a %d minute session on %s.", b.AthleteName, b.Duration, when)}, true
	case string(lifecycle.ActionAccept):
		body := fmt.Sprintf("%s confirmed your session on %s.", b.CoachName, when)
		if b.MeetLink != "" {
			body += " Join here: " + b.MeetLink
		}
		return bookingMessage{b.AthleteID, "Session confirmed", body}, true
	case string(lifecycle.ActionDecline):
		return bookingMessage{b.AthleteID, "Session request declined",
			fmt.Sprintf("%s declined your session request for %s.", b.CoachName, when)}, true
	case string(lifecycle.ActionEmergencyCancel):
		return bookingMessage{b.AthleteID, "Session cancelled",
			fmt.Sprintf("%s had to cancel your session on %s. Reason: %s", b.CoachName, when, b.CancellationReason)}, true
	case string(lifecycle.ActionMarkComplete):
		if b.Status == string(lifecycle.StatusCompleted) {
			return bookingMessage{b.AthleteID, "Session completed",
				fmt.Sprintf("Your session with %s on %s is complete.", b.CoachName, when)}, true
		}
		return bookingMessage{b.AthleteID, "Please confirm your session",
			fmt.Sprintf("%s marked your session on %s as completed. Confirm it and leave a rating.", b.CoachName, when)}, true
	case string(lifecycle.ActionConfirmCompletion):
		return bookingMessage{b.CoachID, "Athlete confirmed the session",
			fmt.Sprintf("%s rated your session on %s %d/5.", b.AthleteName, when, b.Rating)}, true
	}
	return bookingMessage{}, false
}
