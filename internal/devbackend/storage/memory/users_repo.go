package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"pet-walks-client/internal/devbackend/accounts"
)

type userRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]accounts.User
	byEmail map[string]int64
}

func NewUserRepo() accounts.Repository {
	return &userRepo{
		byID:    make(map[int64]accounts.User),
		byEmail: make(map[string]int64),
	}
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := r.byEmail[email]; exists {
		return accounts.User{}, accounts.ErrEmailTaken
	}

	r.nextID++
	u.ID = r.nextID
	u.Email = email
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return accounts.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	r.byID[id] = u
	return nil
}
