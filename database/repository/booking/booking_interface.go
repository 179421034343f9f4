package bookingRepo

import (
	"context"
	"errors"

	"athletetech/models"
)

var (
	// ErrNotFound is returned when no booking has the requested id.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned when the stored booking no longer matches the
	// guard the write was decided against.
	ErrConflict = errors.New("booking was changed by someone else")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking and assigns its ID.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Query lists the bookings matching the filter.
	Query(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// Update writes the non-nil fields of update while the booking still matches guard.
	Update(ctx context.Context, id string, guard models.BookingGuard, update models.BookingUpdate) error
	// Delete removes the booking while it still matches guard.
	Delete(ctx context.Context, id string, guard models.BookingGuard) error
}
