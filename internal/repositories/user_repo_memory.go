package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"igames/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// It enforces the same unique email index as the database stores.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

var _ UserRepository = (*MemoryUserRepository)(nil)

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

func cloneUser(u models.User) *models.User {
	u.Wishlist = slices.Clone(u.Wishlist)
	u.Cart = slices.Clone(u.Cart)
	u.EnsureLists()
	return &u
}

// emailTakenLocked reports whether another user owns email. Caller holds mu.
func (r *MemoryUserRepository) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return fmt.Errorf("email %s: %w", user.Email, ErrDuplicateKey)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.EnsureLists()
	r.users[user.ID] = *cloneUser(*user)
	return nil
}

// GetByID returns a user by its ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user id %q: %w", id, ErrInvalidID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return cloneUser(user), nil
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// Update replaces the stored user.
func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return fmt.Errorf("email %s: %w", user.Email, ErrDuplicateKey)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *cloneUser(*user)
	return nil
}

// Delete removes a user by its ID.
func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}
