package models

import "time"

// Booking represents one coach–athlete session request and its evolving status.
type Booking struct {
	ID          string `bson:"id" json:"id" firestore:"-"`
	CoachID     string `bson:"coachId" json:"coachId" firestore:"coachId"`
	CoachName   string `bson:"coachName" json:"coachName" firestore:"coachName"`
	AthleteID   string `bson:"athleteId" json:"athleteId" firestore:"athleteId"`
	AthleteName string `bson:"athleteName" json:"athleteName" firestore:"athleteName"`

	Date     string `bson:"date" json:"date" firestore:"date"`             // "YYYY-MM-DD", venue wall clock
	Time     string `bson:"time" json:"time" firestore:"time"`             // "HH:MM", venue wall clock
	Duration int    `bson:"duration" json:"duration" firestore:"duration"` // minutes

	IsVirtual bool   `bson:"isVirtual" json:"isVirtual" firestore:"isVirtual"`
	MeetLink  string `bson:"meetLink,omitempty" json:"meetLink,omitempty" firestore:"meetLink,omitempty"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty" firestore:"notes,omitempty"`

	Status string `bson:"status" json:"status" firestore:"status"`

	CompletedByAthlete   bool       `bson:"completedByAthlete" json:"completedByAthlete" firestore:"completedByAthlete"`
	CompletedByCoach     bool       `bson:"completedByCoach" json:"completedByCoach" firestore:"completedByCoach"`
	CompletedByAthleteAt *time.Time `bson:"completedByAthleteAt,omitempty" json:"completedByAthleteAt,omitempty" firestore:"completedByAthleteAt,omitempty"`
	CompletedByCoachAt   *time.Time `bson:"completedByCoachAt,omitempty" json:"completedByCoachAt,omitempty" firestore:"completedByCoachAt,omitempty"`
	CompletedAt          *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty" firestore:"completedAt,omitempty"`

	Rating   int    `bson:"rating,omitempty" json:"rating,omitempty" firestore:"rating,omitempty"`
	Feedback string `bson:"feedback,omitempty" json:"feedback,omitempty" firestore:"feedback,omitempty"`

	CancellationType   string     `bson:"cancellationType,omitempty" json:"cancellationType,omitempty" firestore:"cancellationType,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty" firestore:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty" firestore:"cancelledAt,omitempty"`
	CancelledBy        string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty" firestore:"cancelledBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// BookingUpdate is a field-level partial update. Nil fields are left untouched
// so that coach and athlete writes never clobber each other.
type BookingUpdate struct {
	Status               *string
	MeetLink             *string
	CompletedByAthlete   *bool
	CompletedByCoach     *bool
	CompletedByAthleteAt *time.Time
	CompletedByCoachAt   *time.Time
	CompletedAt          *time.Time
	Rating               *int
	Feedback             *string
	CancellationType     *string
	CancellationReason   *string
	CancelledAt          *time.Time
	CancelledBy          *string
	UpdatedAt            *time.Time
}

// Fields flattens the update into document field names, skipping nil values.
func (u BookingUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.MeetLink != nil {
		fields["meetLink"] = *u.MeetLink
	}
	if u.CompletedByAthlete != nil {
		fields["completedByAthlete"] = *u.CompletedByAthlete
	}
	if u.CompletedByCoach != nil {
		fields["completedByCoach"] = *u.CompletedByCoach
	}
	if u.CompletedByAthleteAt != nil {
		fields["completedByAthleteAt"] = *u.CompletedByAthleteAt
	}
	if u.CompletedByCoachAt != nil {
		fields["completedByCoachAt"] = *u.CompletedByCoachAt
	}
	if u.CompletedAt != nil {
		fields["completedAt"] = *u.CompletedAt
	}
	if u.Rating != nil {
		fields["rating"] = *u.Rating
	}
	if u.Feedback != nil {
		fields["feedback"] = *u.Feedback
	}
	if u.CancellationType != nil {
		fields["cancellationType"] = *u.CancellationType
	}
	if u.CancellationReason != nil {
		fields["cancellationReason"] = *u.CancellationReason
	}
	if u.CancelledAt != nil {
		fields["cancelledAt"] = *u.CancelledAt
	}
	if u.CancelledBy != nil {
		fields["cancelledBy"] = *u.CancelledBy
	}
	if u.UpdatedAt != nil {
		fields["updatedAt"] = *u.UpdatedAt
	}
	return fields
}

// Apply copies the non-nil fields of the update onto b.
func (u BookingUpdate) Apply(b *Booking) {
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.MeetLink != nil {
		b.MeetLink = *u.MeetLink
	}
	if u.CompletedByAthlete != nil {
		b.CompletedByAthlete = *u.CompletedByAthlete
	}
	if u.CompletedByCoach != nil {
		b.CompletedByCoach = *u.CompletedByCoach
	}
	if u.CompletedByAthleteAt != nil {
		b.CompletedByAthleteAt = u.CompletedByAthleteAt
	}
	if u.CompletedByCoachAt != nil {
		b.CompletedByCoachAt = u.CompletedByCoachAt
	}
	if u.CompletedAt != nil {
		b.CompletedAt = u.CompletedAt
	}
	if u.Rating != nil {
		b.Rating = *u.Rating
	}
	if u.Feedback != nil {
		b.Feedback = *u.Feedback
	}
	if u.CancellationType != nil {
		b.CancellationType = *u.CancellationType
	}
	if u.CancellationReason != nil {
		b.CancellationReason = *u.CancellationReason
	}
	if u.CancelledAt != nil {
		b.CancelledAt = u.CancelledAt
	}
	if u.CancelledBy != nil {
		b.CancelledBy = *u.CancelledBy
	}
	if u.UpdatedAt != nil {
		b.UpdatedAt = *u.UpdatedAt
	}
}

// BookingGuard is the state a write was decided against. Stores only apply a
// write while the persisted booking still matches it.
type BookingGuard struct {
	Status             string
	CompletedByAthlete bool
	CompletedByCoach   bool
}

// GuardOf captures the guard for the booking as it was read.
func GuardOf(b *Booking) BookingGuard {
	return BookingGuard{
		Status:             b.Status,
		CompletedByAthlete: b.CompletedByAthlete,
		CompletedByCoach:   b.CompletedByCoach,
	}
}

// Matches reports whether b is still in the guarded state.
func (g BookingGuard) Matches(b *Booking) bool {
	return b.Status == g.Status &&
		b.CompletedByAthlete == g.CompletedByAthlete &&
		b.CompletedByCoach == g.CompletedByCoach
}

// BookingFilter selects bookings. Empty fields are ignored.
type BookingFilter struct {
	CoachID   string
	AthleteID string
	Status    string
}

// Matches reports whether b satisfies the filter.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.CoachID != "" && b.CoachID != f.CoachID {
		return false
	}
	if f.AthleteID != "" && b.AthleteID != f.AthleteID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

// CreateBookingRequest is the athlete's session request.
type CreateBookingRequest struct {
	CoachID   string `json:"coachId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"`
	IsVirtual bool   `json:"isVirtual"`
	Notes     string `json:"notes"`
}

// BookingActionInput carries the guard inputs an action may need.
type BookingActionInput struct {
	MeetLink  string `json:"meetLink,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Feedback  string `json:"feedback,omitempty"`
	Confirmed bool   `json:"confirm,omitempty"`
}

// CoachSummary aggregates a coach's booking history.
type CoachSummary struct {
	CoachID       string  `json:"coachId"`
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Confirmed     int     `json:"confirmed"`
	Completed     int     `json:"completed"`
	Cancelled     int     `json:"cancelled"`
	RatingCount   int     `json:"ratingCount"`
	AverageRating float64 `json:"averageRating"`
}
