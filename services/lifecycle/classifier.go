package lifecycle

import (
	"fmt"
	"time"

	"athletetech/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AllowedDurations are the session lengths, in minutes, an athlete can request.
var AllowedDurations = []int{30, 60, 90, 120}

// Phase is where "now" falls relative to a session.
type Phase int

const (
	PhaseUpcoming Phase = iota
	PhaseOngoing
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseUpcoming:
		return "upcoming"
	case PhaseOngoing:
		return "ongoing"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Schedule is the wall-clock slot of a session at the venue.
type Schedule struct {
	Date     string
	Time     string
	Duration int
}

// ScheduleOf extracts the schedule of a booking.
func ScheduleOf(b *models.Booking) Schedule {
	return Schedule{Date: b.Date, Time: b.Time, Duration: b.Duration}
}

// Start parses date and time as wall clock in loc. No conversion between
// zones happens here: loc is the venue's zone.
func (s Schedule) Start(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date/time %q %q: %w", s.Date, s.Time, err)
	}
	return start, nil
}

// End is Start plus the duration.
func (s Schedule) End(loc *time.Location) (time.Time, error) {
	start, err := s.Start(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(s.Duration) * time.Minute), nil
}

// Classify places now relative to the session: upcoming before start,
// ongoing from start through end inclusive, finished after end.
func (s Schedule) Classify(now time.Time, loc *time.Location) (Phase, error) {
	start, err := s.Start(loc)
	if err != nil {
		return PhaseUpcoming, err
	}
	end := start.Add(time.Duration(s.Duration) * time.Minute)
	now = now.In(start.Location())
	switch {
	case now.Before(start):
		return PhaseUpcoming, nil
	case now.After(end):
		return PhaseFinished, nil
	default:
		return PhaseOngoing, nil
	}
}

// IsUpcoming reports now < start.
func (s Schedule) IsUpcoming(now time.Time, loc *time.Location) bool {
	p, err := s.Classify(now, loc)
	return err == nil && p == PhaseUpcoming
}

// IsOngoing reports start <= now <= end.
func (s Schedule) IsOngoing(now time.Time, loc *time.Location) bool {
	p, err := s.Classify(now, loc)
	return err == nil && p == PhaseOngoing
}

// IsFinished reports now > end.
func (s Schedule) IsFinished(now time.Time, loc *time.Location) bool {
	p, err := s.Classify(now, loc)
	return err == nil && p == PhaseFinished
}

func validDuration(d int) bool {
	for _, allowed := range AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}
