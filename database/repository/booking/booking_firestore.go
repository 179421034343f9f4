package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"athletetech/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const firestoreCollection = "bookings"

// FirestoreBookingRepo implements BookingRepository on a Firestore collection.
// Guarded writes run inside a transaction.
type FirestoreBookingRepo struct {
	client *firestore.Client
}

// NewFirestoreBookingRepo creates a BookingRepository backed by Firestore.
func NewFirestoreBookingRepo(client *firestore.Client) BookingRepository {
	return &FirestoreBookingRepo{client: client}
}

func (r *FirestoreBookingRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(firestoreCollection)
}

// Create adds a booking document with a generated ID.
func (r *FirestoreBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ref := r.coll().NewDoc()
	if _, err := ref.Create(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = ref.ID
	return nil
}

// GetByID retrieves a booking document.
func (r *FirestoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return decode(snap)
}

// Query lists bookings matching the filter ordered by session date and time.
func (r *FirestoreBookingRepo) Query(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	q := r.coll().Query
	if filter.CoachID != "" {
		q = q.Where("coachId", "==", filter.CoachID)
	}
	if filter.AthleteID != "" {
		q = q.Where("athleteId", "==", filter.AthleteID)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := decode(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	// same order as the Mongo implementation
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].Time < bookings[j].Time
	})
	return bookings, nil
}

// Update writes the changed fields inside a transaction that first checks guard.
func (r *FirestoreBookingRepo) Update(ctx context.Context, id string, guard models.BookingGuard, update models.BookingUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	fields := update.Fields()
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	ref := r.coll().Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := checkGuard(tx, ref, guard); err != nil {
			return err
		}
		return tx.Update(ref, updates)
	})
}

// Delete removes the booking document inside a transaction that first checks guard.
func (r *FirestoreBookingRepo) Delete(ctx context.Context, id string, guard models.BookingGuard) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ref := r.coll().Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := checkGuard(tx, ref, guard); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
}

func checkGuard(tx *firestore.Transaction, ref *firestore.DocumentRef, guard models.BookingGuard) error {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read booking with id %s: %w", ref.ID, err)
	}
	current, err := decode(snap)
	if err != nil {
		return err
	}
	if !guard.Matches(current) {
		return ErrConflict
	}
	return nil
}

func decode(snap *firestore.DocumentSnapshot) (*models.Booking, error) {
	var booking models.Booking
	if err := snap.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", snap.Ref.ID, err)
	}
	booking.ID = snap.Ref.ID
	return &booking, nil
}
