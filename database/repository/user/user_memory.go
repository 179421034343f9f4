package userRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"athletetech/models"

	"github.com/google/uuid"
)

// MemoryUserRepo keeps profiles in process memory (STORE_BACKEND=memory and tests).
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemoryUserRepo creates an empty in-memory UserRepository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]models.User{}}
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if email != "" && u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, ok := r.users[user.ID]; ok {
		return ErrEmailTaken
	}
	for _, u := range r.users {
		if user.Email != "" && u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) ListByType(_ context.Context, userType string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		if u.UserType == userType {
			u.PasswordHash = ""
			u.FCMToken = ""
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName() != out[j].FullName() {
			return out[i].FullName() < out[j].FullName()
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryUserRepo) SetFCMToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.FCMToken = token
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}
