package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"igames/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGameRepository is a GORM implementation of GameStore.
type GORMGameRepository struct {
	db *gorm.DB
}

var _ GameStore = (*GORMGameRepository)(nil)

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nameContains restricts a query to games whose name contains search, ignoring case.
func nameContains(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		return db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
}

// Count returns the number of games matching search.
func (r *GORMGameRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Scopes(nameContains(search)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return total, nil
}

// List returns one window of games matching search, ordered by name.
func (r *GORMGameRepository) List(ctx context.Context, search string, offset, limit int) ([]models.Game, error) {
	games := []models.Game{}
	err := r.db.WithContext(ctx).
		Scopes(nameContains(search)).
		Order("name").Order("id").
		Offset(offset).Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// GetByID retrieves a single game by its ID from the database.
func (r *GORMGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("game id %q: %w", id, ErrInvalidID)
	}
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	return &game, nil
}

// GetByIDs returns the games whose id is in ids. Unknown ids are skipped.
func (r *GORMGameRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Game, error) {
	games := []models.Game{}
	if len(ids) == 0 {
		return games, nil
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("game id %q: %w", id, ErrInvalidID)
		}
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get games by IDs: %w", err)
	}
	return games, nil
}

// Sample returns up to size distinct games in random order.
func (r *GORMGameRepository) Sample(ctx context.Context, size int) ([]models.Game, error) {
	games := []models.Game{}
	if err := r.db.WithContext(ctx).Order("RANDOM()").Limit(size).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to sample games: %w", err)
	}
	return games, nil
}

// CreateMany inserts games in batches, generating missing ids.
func (r *GORMGameRepository) CreateMany(ctx context.Context, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	for i := range games {
		if games[i].ID == "" {
			games[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(games, 100).Error; err != nil {
		return fmt.Errorf("failed to import games: %w", err)
	}
	return nil
}

// DeleteAll removes every game and returns how many were deleted.
func (r *GORMGameRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Game{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete games: %w", res.Error)
	}
	return res.RowsAffected, nil
}
