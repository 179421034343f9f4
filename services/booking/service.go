package booking

import (
	"context"
	"errors"
	"fmt"

	userRepo "athletetech/database/repository/user"
	"athletetech/models"
	"athletetech/services/lifecycle"
	"athletetech/services/notification"
	"athletetech/utils"

	"go.uber.org/zap"
)

// Create validates an athlete's request and stores it as pending.
func (s *DefaultBookingService) Create(ctx context.Context, actor lifecycle.Actor, req models.CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != lifecycle.RoleAthlete {
		return nil, lifecycle.ErrWrongRole
	}

	var coach *models.User
	if req.CoachID != "" {
		u, err := s.Users.GetByID(ctx, req.CoachID)
		if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
			return nil, fmt.Errorf("failed to load coach %s: %w", req.CoachID, err)
		}
		coach = u
	}
	if actor.Name == "" {
		if athlete, err := s.Users.GetByID(ctx, actor.ID); err == nil {
			actor.Name = athlete.FullName()
		}
	}

	b, err := lifecycle.NewBooking(actor, coach, req, s.Now(), s.Location)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("coachId", b.CoachID),
		zap.String("athleteId", b.AthleteID))
	s.notify(ctx, b, notification.EventCreated)
	return b, nil
}

// Get returns a booking the actor participates in.
func (s *DefaultBookingService) Get(ctx context.Context, actor lifecycle.Actor, id string) (*BookingDetail, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !participates(b, actor) {
		return nil, lifecycle.ErrNotParticipant
	}
	phase, err := lifecycle.ScheduleOf(b).Classify(s.Now(), s.Location)
	detail := &BookingDetail{Booking: *b, Actions: lifecycle.Allowed(b, actor)}
	if err == nil {
		detail.Phase = phase.String()
	}
	if detail.Actions == nil {
		detail.Actions = []lifecycle.Action{}
	}
	return detail, nil
}

// List returns the actor's bookings and their views, recomputed on every call.
func (s *DefaultBookingService) List(ctx context.Context, actor lifecycle.Actor) (*BookingList, error) {
	filter := models.BookingFilter{}
	switch actor.Role {
	case lifecycle.RoleCoach:
		filter.CoachID = actor.ID
	case lifecycle.RoleAthlete:
		filter.AthleteID = actor.ID
	default:
		return nil, lifecycle.ErrWrongRole
	}

	bookings, err := s.Repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &BookingList{
		Bookings: bookings,
		Views:    lifecycle.Partition(bookings, s.Now(), s.Location),
	}, nil
}

// Act applies one lifecycle action. The booking is re-read and re-decided
// when the other participant wrote between our read and write.
func (s *DefaultBookingService) Act(ctx context.Context, actor lifecycle.Actor, id string, action lifecycle.Action, in models.BookingActionInput) (*models.Booking, error) {
	logger := utils.GetLogger().With(
		zap.String("bookingId", id),
		zap.String("action", string(action)),
		zap.String("actorId", actor.ID))

	for attempt := 1; ; attempt++ {
		b, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		d, err := lifecycle.Decide(b, actor, action, in, s.Now(), s.Location)
		if err != nil {
			return nil, err
		}

		if d.Delete {
			err = s.Repo.Delete(ctx, id, d.Guard)
		} else {
			err = s.Repo.Update(ctx, id, d.Guard, d.Update)
		}
		if err == nil {
			d.Update.Apply(b)
			logger.Info("booking transition committed",
				zap.String("from", string(d.From)),
				zap.String("to", string(d.To)),
				zap.Bool("deleted", d.Delete))
			s.afterCommit(ctx, b, d)
			return b, nil
		}
		if !errors.Is(err, ErrConflict) || attempt == maxAttempts {
			return nil, err
		}
		logger.Debug("booking changed concurrently, retrying", zap.Int("attempt", attempt))
	}
}

// Delete removes a completed booking for its athlete.
func (s *DefaultBookingService) Delete(ctx context.Context, actor lifecycle.Actor, id string, confirmed bool) error {
	_, err := s.Act(ctx, actor, id, lifecycle.ActionDelete, models.BookingActionInput{Confirmed: confirmed})
	return err
}

// CoachSummary aggregates a coach's booking counts and ratings.
func (s *DefaultBookingService) CoachSummary(ctx context.Context, coachID string) (models.CoachSummary, error) {
	coach, err := s.Users.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return models.CoachSummary{}, ErrCoachNotFound
		}
		return models.CoachSummary{}, err
	}
	if coach.UserType != models.UserTypeCoach {
		return models.CoachSummary{}, ErrCoachNotFound
	}
	bookings, err := s.Repo.Query(ctx, models.BookingFilter{CoachID: coachID})
	if err != nil {
		return models.CoachSummary{}, err
	}
	return lifecycle.Summarize(coachID, bookings), nil
}

func (s *DefaultBookingService) afterCommit(ctx context.Context, b *models.Booking, d lifecycle.Decision) {
	if d.Delete {
		return
	}
	s.notify(ctx, b, string(d.Action))
	if d.Action == lifecycle.ActionAccept && s.Notification != nil {
		s.Notification.ScheduleReminders(ctx, b)
	}
}

func (s *DefaultBookingService) notify(ctx context.Context, b *models.Booking, event string) {
	if s.Notification == nil {
		return
	}
	s.Notification.NotifyBooking(ctx, b, event)
}

func participates(b *models.Booking, actor lifecycle.Actor) bool {
	switch actor.Role {
	case lifecycle.RoleCoach:
		return actor.ID != "" && b.CoachID == actor.ID
	case lifecycle.RoleAthlete:
		return actor.ID != "" && b.AthleteID == actor.ID
	}
	return false
}
