package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemRepo keeps accounts in memory for tests and local runs.
type InMemRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{users: make(map[uuid.UUID]User)}
}

func (r *InMemRepo) Store(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Version++
	r.users[u.UUID] = u
	return nil
}

func (r *InMemRepo) GetByUUID(ctx context.Context, userUuid uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[userUuid]; ok {
		return u, nil
	}
	return User{}, ErrNotFound
}

func (r *InMemRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
