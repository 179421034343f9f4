package booking

import (
	"errors"

	bookingRepo "athletetech/database/repository/booking"
)

var (
	ErrNotFound      = bookingRepo.ErrNotFound
	ErrConflict      = bookingRepo.ErrConflict
	ErrCoachNotFound = errors.New("coach not found")
)

// maxAttempts bounds re-reads after a guard mismatch.
const maxAttempts = 3
