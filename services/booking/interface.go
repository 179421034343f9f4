package booking

import (
	"context"
	"time"

	bookingRepo "athletetech/database/repository/booking"
	userRepo "athletetech/database/repository/user"
	"athletetech/models"
	"athletetech/services/lifecycle"
	"athletetech/services/notification"
)

// BookingService runs lifecycle decisions against the store.
type BookingService interface {
	Create(ctx context.Context, actor lifecycle.Actor, req models.CreateBookingRequest) (*models.Booking, error)
	Get(ctx context.Context, actor lifecycle.Actor, id string) (*BookingDetail, error)
	List(ctx context.Context, actor lifecycle.Actor) (*BookingList, error)
	Act(ctx context.Context, actor lifecycle.Actor, id string, action lifecycle.Action, in models.BookingActionInput) (*models.Booking, error)
	Delete(ctx context.Context, actor lifecycle.Actor, id string, confirmed bool) error
	CoachSummary(ctx context.Context, coachID string) (models.CoachSummary, error)
}

// BookingDetail is one booking with what the caller may do next.
type BookingDetail struct {
	Booking models.Booking     `json:"booking"`
	Phase   string             `json:"phase"`
	Actions []lifecycle.Action `json:"actions"`
}

// BookingList is the caller's bookings plus the dashboard views.
type BookingList struct {
	Bookings []models.Booking `json:"bookings"`
	Views    lifecycle.Views  `json:"views"`
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Users        userRepo.UserRepository
	Notification notification.NotificationService
	// Location is the venue zone booking dates and times are written in.
	Location *time.Location
	Now      func() time.Time
}

func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	notif notification.NotificationService,
	loc *time.Location,
) *DefaultBookingService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultBookingService{
		Repo:         repo,
		Users:        users,
		Notification: notif,
		Location:     loc,
		Now:          time.Now,
	}
}
