package services_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"igames/internal/apperror"
	"igames/internal/models"
	"igames/internal/repositories"
	"igames/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gamesNamed(names ...string) []models.Game {
	games := make([]models.Game, len(names))
	for i, name := range names {
		games[i] = models.Game{ID: fmt.Sprintf("game-%d", i), Name: name}
	}
	return games
}

func TestGameService_ListGames(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	page := gamesNamed("a", "b", "c", "d", "e", "f", "g", "h")
	mockRepo.On("Count", mock.Anything, "").Return(int64(20), nil).Once()
	mockRepo.On("List", mock.Anything, "", 0, 8).Return(page, nil).Once()

	// Zero values fall back to page 1 and page size 8
	result, err := service.ListGames(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Games, 8)
	mockRepo.AssertExpectations(t)
}

func TestGameService_ListGames_Offset(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Count", mock.Anything, "zelda").Return(int64(5), nil).Once()
	mockRepo.On("List", mock.Anything, "zelda", 2, 2).Return(gamesNamed("Zelda 3", "Zelda 4"), nil).Once()

	result, err := service.ListGames(ctx, 2, 2, "zelda")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Games, 2)
	mockRepo.AssertExpectations(t)
}

func TestGameService_ListGames_PageBeyondLast(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Count", mock.Anything, "").Return(int64(20), nil).Once()

	result, err := service.ListGames(ctx, 5, 8, "")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.EqualError(t, err, "Page not found.")
	// The page is still computed
	require.NotNil(t, result)
	assert.Equal(t, 3, result.TotalPages)
	assert.Empty(t, result.Games)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestGameService_ListGames_HugePage(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Count", mock.Anything, "").Return(int64(20), nil).Once()

	result, err := service.ListGames(ctx, math.MaxInt64/4, 8, "")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	require.NotNil(t, result)
	assert.Equal(t, 3, result.TotalPages)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_ListGames_HugePageSize(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	all := gamesNamed("a", "b", "c")
	mockRepo.On("Count", mock.Anything, "").Return(int64(3), nil).Once()
	mockRepo.On("List", mock.Anything, "", 0, math.MaxInt64).Return(all, nil).Once()

	result, err := service.ListGames(ctx, 1, math.MaxInt64, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.Games, 3)
	mockRepo.AssertExpectations(t)
}

func TestGameService_ListGames_EmptyCatalog(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Count", mock.Anything, "zelda").Return(int64(0), nil).Once()

	result, err := service.ListGames(ctx, 1, 8, "zelda")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, 0, result.TotalPages)
}

func TestGameService_ListGames_StoreFailure(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Count", mock.Anything, "").Return(int64(0), errors.New("connection reset")).Once()

	_, err := service.ListGames(ctx, 1, 8, "")
	assert.True(t, apperror.IsKind(err, apperror.KindServer))
	mockRepo.AssertExpectations(t)
}

func TestGameService_GetGame(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	expected := &models.Game{ID: "game-1", Name: "Hades"}
	mockRepo.On("GetByID", mock.Anything, "game-1").Return(expected, nil).Once()
	game, err := service.GetGame(ctx, "game-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, game)

	mockRepo.On("GetByID", mock.Anything, "game-99").Return(nil, fmt.Errorf("game game-99: %w", repositories.ErrNotFound)).Once()
	_, err = service.GetGame(ctx, "game-99")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.EqualError(t, err, "Game with ID game-99 was not found.")

	mockRepo.On("GetByID", mock.Anything, "xyz").Return(nil, repositories.ErrInvalidID).Once()
	_, err = service.GetGame(ctx, "xyz")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidID))
	mockRepo.AssertExpectations(t)
}

func TestGameService_RandomGames(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	mockRepo.On("Sample", mock.Anything, services.RandomSampleSize).Return(gamesNamed("a", "b", "c"), nil).Once()

	games, err := service.RandomGames(ctx)
	assert.NoError(t, err)
	assert.Len(t, games, 3)
	mockRepo.AssertExpectations(t)
}

func TestGameService_GamesByIDs(t *testing.T) {
	mockRepo := new(MockGameRepository)
	service := services.NewGameService(mockRepo)

	ids := []string{"game-0", "missing"}
	mockRepo.On("GetByIDs", mock.Anything, ids).Return(gamesNamed("a"), nil).Once()
	games, err := service.GamesByIDs(ctx, ids)
	assert.NoError(t, err)
	assert.Len(t, games, 1)

	mockRepo.On("GetByIDs", mock.Anything, []string{"bad"}).Return(nil, repositories.ErrInvalidID).Once()
	_, err = service.GamesByIDs(ctx, []string{"bad"})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidID))
	mockRepo.AssertExpectations(t)
}
