package userRepo

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

// FirestoreUserRepo keeps profiles in the "users" collection keyed by uid.
type FirestoreUserRepo struct {
	client *firestore.Client
}

// NewFirestoreUserRepo creates a UserRepository backed by Firestore.
func NewFirestoreUserRepo(client *firestore.Client) UserRepository {
	return &FirestoreUserRepo{client: client}
}

func (r *FirestoreUserRepo) coll() *firestore.CollectionRef {
	return r.client.Collection("users")
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return decodeUser(snap)
}

func (r *FirestoreUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.coll().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return decodeUser(docs[0])
}

func (r *FirestoreUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	ref := r.coll().NewDoc()
	if user.ID != "" {
		ref = r.coll().Doc(user.ID)
	}
	if _, err := ref.Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = ref.ID
	return nil
}

func (r *FirestoreUserRepo) ListByType(ctx context.Context, userType string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.coll().Where("userType", "==", userType).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = ""
		u.FCMToken = ""
		users = append(users, *u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].FullName() < users[j].FullName()
	})
	return users, nil
}

func (r *FirestoreUserRepo) SetFCMToken(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll().Doc(id).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: token},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*models.User, error) {
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}
