package services

import (
	"context"
	"errors"

	"igames/internal/apperror"
	"igames/internal/models"
	"igames/internal/repositories"
)

const (
	DefaultPage      = 1
	DefaultPageSize  = 8
	RandomSampleSize = 6
)

// GamePage is one page of the catalog listing.
type GamePage struct {
	Games      []models.Game `json:"games"`
	TotalPages int           `json:"totalPages"`
}

// GameService handles read-only catalog operations.
type GameService struct {
	repo repositories.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(repo repositories.GameRepository) *GameService {
	return &GameService{
		repo: repo,
	}
}

// ListGames returns the requested page of games whose name contains search.
// A page past the last one yields a NotFound error alongside the computed (empty) page.
func (s *GameService) ListGames(ctx context.Context, page, pageSize int, search string) (*GamePage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	totalPages := pageCount(total, pageSize)

	// A page past the end is empty. From here on the offset stays below total.
	if page > totalPages {
		return &GamePage{Games: []models.Game{}, TotalPages: totalPages}, apperror.NotFound("Page not found.")
	}

	games, err := s.repo.List(ctx, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &GamePage{Games: games, TotalPages: totalPages}, nil
}

// pageCount is ceil(total/pageSize) without the addition that overflows for huge page sizes.
func pageCount(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int((total-1)/int64(pageSize) + 1)
}

// GetGame retrieves a single game by its ID.
func (s *GameService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, gameLookupError(err, id)
	}
	return game, nil
}

// RandomGames draws RandomSampleSize distinct games, or all of them if the catalog is smaller.
func (s *GameService) RandomGames(ctx context.Context) ([]models.Game, error) {
	games, err := s.repo.Sample(ctx, RandomSampleSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return games, nil
}

// GamesByIDs returns the games among ids that exist. Missing ids are skipped.
func (s *GameService) GamesByIDs(ctx context.Context, ids []string) ([]models.Game, error) {
	games, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, apperror.InvalidID(InvalidIDMessage)
		}
		return nil, apperror.Internal(err)
	}
	return games, nil
}

// InvalidIDMessage is returned for ids the store cannot parse.
const InvalidIDMessage = "Invalid ID."

func gameLookupError(err error, id string) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return apperror.InvalidID(InvalidIDMessage)
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.NotFound("Game with ID %s was not found.", id)
	default:
		return apperror.Internal(err)
	}
}
