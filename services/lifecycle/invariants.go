package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"athletetech/models"
)

// CheckInvariants reports every lifecycle invariant b violates.
func CheckInvariants(b *models.Booking) error {
	var errs []error
	status := Status(b.Status)
	bothDone := b.CompletedByAthlete && b.CompletedByCoach

	if (status == StatusCompleted) != bothDone {
		errs = append(errs, fmt.Errorf("status %q inconsistent with completion flags (athlete=%t, coach=%t)", b.Status, b.CompletedByAthlete, b.CompletedByCoach))
	}
	if (b.CompletedAt != nil) != bothDone {
		errs = append(errs, errors.New("completedAt must be set exactly when both parties completed"))
	}
	if b.IsVirtual && reachedConfirmed(status) && strings.TrimSpace(b.MeetLink) == "" {
		errs = append(errs, errors.New("confirmed virtual session has no meet link"))
	}
	if b.MeetLink != "" && (!b.IsVirtual || !reachedConfirmed(status) && status != StatusCancelled) {
		errs = append(errs, errors.New("meet link present on a booking that is not a confirmed virtual session"))
	}
	if b.CancellationType == CancellationEmergency && strings.TrimSpace(b.CancellationReason) == "" {
		errs = append(errs, errors.New("emergency cancellation without a reason"))
	}
	if b.Rating != 0 && (!b.CompletedByAthlete || b.Rating < 1 || b.Rating > 5) {
		errs = append(errs, fmt.Errorf("rating %d without a valid athlete confirmation", b.Rating))
	}
	return errors.Join(errs...)
}

func reachedConfirmed(s Status) bool {
	return s == StatusConfirmed || s == StatusPendingCompletion || s == StatusCompleted
}
