package lifecycle

import (
	"strings"
	"time"

	"athletetech/models"
)

// DefaultDuration is used when the request leaves the duration empty.
const DefaultDuration = 60

// NewBooking validates an athlete's request against coach and builds the
// pending booking to insert. The id is left for the store to assign.
func NewBooking(actor Actor, coach *models.User, req models.CreateBookingRequest, now time.Time, loc *time.Location) (*models.Booking, error) {
	if actor.Role != RoleAthlete {
		return nil, ErrWrongRole
	}
	if coach == nil || coach.UserType != models.UserTypeCoach {
		return nil, invalid("coachId", "please select a coach")
	}
	date := strings.TrimSpace(req.Date)
	clock := strings.TrimSpace(req.Time)
	if date == "" || clock == "" {
		return nil, invalid("date", "please select both date and time")
	}
	duration := req.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	if !validDuration(duration) {
		return nil, invalid("duration", "duration must be 30, 60, 90 or 120 minutes")
	}

	sched := Schedule{Date: date, Time: clock, Duration: duration}
	phase, err := sched.Classify(now, loc)
	if err != nil {
		return nil, invalid("date", "please enter the date as YYYY-MM-DD and the time as HH:MM")
	}
	if phase != PhaseUpcoming {
		return nil, invalid("date", "sessions can only be requested in the future")
	}

	return &models.Booking{
		CoachID:     coach.ID,
		CoachName:   coach.FullName(),
		AthleteID:   actor.ID,
		AthleteName: actor.Name,
		Date:        date,
		Time:        clock,
		Duration:    duration,
		IsVirtual:   req.IsVirtual,
		Notes:       strings.TrimSpace(req.Notes),
		Status:      string(StatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
