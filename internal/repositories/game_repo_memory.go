package repositories

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"igames/internal/models"

	"github.com/google/uuid"
)

// MemoryGameRepository is an in-memory implementation of GameStore.
type MemoryGameRepository struct {
	games map[string]models.Game
	mu    sync.RWMutex
}

var _ GameStore = (*MemoryGameRepository)(nil)

// NewMemoryGameRepository creates a new instance of MemoryGameRepository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[string]models.Game),
	}
}

// matchingLocked returns games whose name contains search, sorted by name then id.
func (r *MemoryGameRepository) matchingLocked(search string) []models.Game {
	needle := strings.ToLower(search)
	out := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b models.Game) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Count returns the number of games matching search.
func (r *MemoryGameRepository) Count(_ context.Context, search string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matchingLocked(search))), nil
}

// List returns one window of games matching search.
func (r *MemoryGameRepository) List(_ context.Context, search string, offset, limit int) ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid window offset=%d limit=%d", offset, limit)
	}

	matching := r.matchingLocked(search)
	if offset >= len(matching) {
		return []models.Game{}, nil
	}
	end := len(matching)
	if limit < end-offset {
		end = offset + limit
	}
	return matching[offset:end], nil
}

// GetByID returns a game by its ID.
func (r *MemoryGameRepository) GetByID(_ context.Context, id string) (*models.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("game id %q: %w", id, ErrInvalidID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return &game, nil
}

// GetByIDs returns the games present among ids.
func (r *MemoryGameRepository) GetByIDs(_ context.Context, ids []string) ([]models.Game, error) {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("game id %q: %w", id, ErrInvalidID)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	games := []models.Game{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if game, ok := r.games[id]; ok && !seen[id] {
			seen[id] = true
			games = append(games, game)
		}
	}
	return games, nil
}

// Sample returns up to size distinct games in random order.
func (r *MemoryGameRepository) Sample(_ context.Context, size int) ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		all = append(all, g)
	}
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:min(size, len(all))], nil
}

// CreateMany adds games, generating missing ids.
func (r *MemoryGameRepository) CreateMany(_ context.Context, games []models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range games {
		if games[i].ID == "" {
			games[i].ID = uuid.New().String()
		}
		r.games[games[i].ID] = games[i]
	}
	return nil
}

// DeleteAll removes every game.
func (r *MemoryGameRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.games))
	r.games = make(map[string]models.Game)
	return n, nil
}
