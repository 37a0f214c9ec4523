package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/geocoder89/coursehub/internal/domain/user"
	"github.com/geocoder89/coursehub/internal/repo/postgres"
	"github.com/google/uuid"
)

type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // keyed by lowercased email
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

// Seed inserts a user directly, for tests and dev bootstrapping.
func (r *UsersRepo) Seed(email, passwordHash, name string, role user.Role) user.User {
	now := time.Now()

	u := user.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.mu.Lock()
	r.items[u.Email] = u
	r.mu.Unlock()

	return u
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[strings.ToLower(email)]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, postgres.ErrUserNotFound
	}

	return u, nil
}
