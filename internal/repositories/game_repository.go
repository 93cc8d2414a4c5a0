package repositories

import (
	"context"

	"igames/internal/models"
)

// GameRepository defines read access to the game catalog.
// search is matched case-insensitively as a literal substring of the game name.
type GameRepository interface {
	Count(ctx context.Context, search string) (int64, error)
	List(ctx context.Context, search string, offset, limit int) ([]models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Game, error)
	Sample(ctx context.Context, size int) ([]models.Game, error)
}

// GameImporter is the write side used by the offline seeder.
type GameImporter interface {
	CreateMany(ctx context.Context, games []models.Game) error
	DeleteAll(ctx context.Context) (int64, error)
}

// GameStore is a catalog backend supporting both reads and seeding.
type GameStore interface {
	GameRepository
	GameImporter
}
