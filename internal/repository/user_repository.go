package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spec-kit/credential-gateway/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserRepository is the credential store: username -> password hash.
type UserRepository interface {
	// Create inserts user unless the username is taken, atomically with
	// respect to other Create calls for the same username.
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

// NewMemoryUserRepository returns a process-local repository. Nothing survives a restart.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]domain.User),
		now:   time.Now,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUserExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok, nil
}
