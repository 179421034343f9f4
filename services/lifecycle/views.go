package lifecycle

import (
	"sort"
	"time"

	"athletetech/models"
)

// Views are the dashboard projections of a user's bookings.
type Views struct {
	Pending            []models.Booking `json:"pending"`
	Upcoming           []models.Booking `json:"upcoming"`
	Confirmed          []models.Booking `json:"confirmed"`
	AwaitingCompletion []models.Booking `json:"awaitingCompletion"`
	Completed          []models.Booking `json:"completed"`
	Cancelled          []models.Booking `json:"cancelled"`
}

// Partition projects bookings into Views. The input slice is not modified;
// every view holds copies in its own order.
func Partition(bookings []models.Booking, now time.Time, loc *time.Location) Views {
	v := Views{
		Pending:            []models.Booking{},
		Upcoming:           []models.Booking{},
		Confirmed:          []models.Booking{},
		AwaitingCompletion: []models.Booking{},
		Completed:          []models.Booking{},
		Cancelled:          []models.Booking{},
	}
	for _, b := range bookings {
		switch Status(b.Status) {
		case StatusPending:
			v.Pending = append(v.Pending, b)
		case StatusConfirmed:
			v.Confirmed = append(v.Confirmed, b)
			if !ScheduleOf(&b).IsFinished(now, loc) {
				v.Upcoming = append(v.Upcoming, b)
			}
		case StatusPendingCompletion:
			v.AwaitingCompletion = append(v.AwaitingCompletion, b)
		case StatusCompleted:
			v.Completed = append(v.Completed, b)
		case StatusCancelled:
			v.Cancelled = append(v.Cancelled, b)
		}
	}

	byStart := func(list []models.Booking) {
		sort.SliceStable(list, func(i, j int) bool {
			return startOf(&list[i], loc).Before(startOf(&list[j], loc))
		})
	}
	byStart(v.Pending)
	byStart(v.Upcoming)
	byStart(v.Confirmed)
	byStart(v.AwaitingCompletion)

	sort.SliceStable(v.Completed, func(i, j int) bool {
		return completedOf(&v.Completed[i]).After(completedOf(&v.Completed[j]))
	})
	sort.SliceStable(v.Cancelled, func(i, j int) bool {
		return cancelledOf(&v.Cancelled[i]).After(cancelledOf(&v.Cancelled[j]))
	})
	return v
}

// Summarize aggregates counts and the average athlete rating.
func Summarize(coachID string, bookings []models.Booking) models.CoachSummary {
	s := models.CoachSummary{CoachID: coachID}
	ratingSum := 0
	for _, b := range bookings {
		s.Total++
		switch Status(b.Status) {
		case StatusPending:
			s.Pending++
		case StatusConfirmed, StatusPendingCompletion:
			s.Confirmed++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		}
		if b.Rating > 0 {
			s.RatingCount++
			ratingSum += b.Rating
		}
	}
	if s.RatingCount > 0 {
		s.AverageRating = float64(ratingSum) / float64(s.RatingCount)
	}
	return s
}

// unparseable schedules sort last
func startOf(b *models.Booking, loc *time.Location) time.Time {
	t, err := ScheduleOf(b).Start(loc)
	if err != nil {
		return time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func completedOf(b *models.Booking) time.Time {
	if b.CompletedAt != nil {
		return *b.CompletedAt
	}
	return b.UpdatedAt
}

func cancelledOf(b *models.Booking) time.Time {
	if b.CancelledAt != nil {
		return *b.CancelledAt
	}
	return b.UpdatedAt
}
