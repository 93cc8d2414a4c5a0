package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"igames/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedFile = "../../data/games-data.json"

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--import"}, "default.json", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, modeImport, opts.mode)
	assert.Equal(t, "default.json", opts.file)

	opts, err = parseFlags([]string{"--import", "-file", "other.json"}, "default.json", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "other.json", opts.file)

	opts, err = parseFlags([]string{"--delete"}, "default.json", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, modeDelete, opts.mode)

	_, err = parseFlags(nil, "default.json", io.Discard)
	assert.Error(t, err)
	_, err = parseFlags([]string{"--import", "--delete"}, "default.json", io.Discard)
	assert.Error(t, err)
	_, err = parseFlags([]string{"--bogus"}, "default.json", io.Discard)
	assert.Error(t, err)
}

func TestLoadGames_Dataset(t *testing.T) {
	f, err := os.Open(seedFile)
	require.NoError(t, err)
	defer f.Close()

	games, err := loadGames(f)
	require.NoError(t, err)
	assert.NotEmpty(t, games)
	for _, g := range games {
		assert.Empty(t, g.ID)
		assert.NotEmpty(t, g.Platforms)
	}
}

func TestLoadGames_Invalid(t *testing.T) {
	_, err := loadGames(strings.NewReader(`{"name": "not a list"}`))
	assert.Error(t, err)

	// Missing description and empty lists
	_, err = loadGames(strings.NewReader(`[{"name": "Broken", "platforms": []}]`))
	assert.ErrorContains(t, err, "Broken")
}

func TestSeed_ImportThenDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryGameRepository()

	require.NoError(t, seed(ctx, repo, options{mode: modeImport, file: seedFile}))
	count, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)

	require.NoError(t, seed(ctx, repo, options{mode: modeDelete}))
	count, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeed_MissingFile(t *testing.T) {
	repo := repositories.NewMemoryGameRepository()
	err := seed(context.Background(), repo, options{mode: modeImport, file: filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}
