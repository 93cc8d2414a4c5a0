// Command seeder imports the game catalog from a JSON file or deletes every game.
//
//	seeder --import [-file data/games-data.json]
//	seeder --delete
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"igames/internal/config"
	"igames/internal/models"
	"igames/internal/repositories"
	"igames/internal/storage"

	"github.com/go-playground/validator/v10"
)

const seedTimeout = 2 * time.Minute

type mode int

const (
	modeImport mode = iota + 1
	modeDelete
)

type options struct {
	mode mode
	file string
}

func parseFlags(args []string, defaultFile string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("seeder", flag.ContinueOnError)
	fs.SetOutput(output)
	doImport := fs.Bool("import", false, "import games from the seed file")
	doDelete := fs.Bool("delete", false, "delete every game")
	file := fs.String("file", defaultFile, "path to the JSON seed file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch {
	case *doImport && *doDelete:
		return options{}, errors.New("--import and --delete are mutually exclusive")
	case *doImport:
		return options{mode: modeImport, file: *file}, nil
	case *doDelete:
		return options{mode: modeDelete, file: *file}, nil
	default:
		return options{}, errors.New("one of --import or --delete is required")
	}
}

// loadGames reads and validates the seed file.
func loadGames(r io.Reader) ([]models.Game, error) {
	var games []models.Game
	if err := json.NewDecoder(r).Decode(&games); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	validate := validator.New()
	for i := range games {
		games[i].Name = strings.TrimSpace(games[i].Name)
		games[i].Description = strings.TrimSpace(games[i].Description)
		if err := validate.Struct(games[i]); err != nil {
			return nil, fmt.Errorf("game %d (%q) is invalid: %w", i, games[i].Name, err)
		}
	}
	return games, nil
}

func seed(ctx context.Context, importer repositories.GameImporter, opts options) error {
	switch opts.mode {
	case modeImport:
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()

		games, err := loadGames(f)
		if err != nil {
			return err
		}
		if err := importer.CreateMany(ctx, games); err != nil {
			return err
		}
		log.Printf("Data imported successfully (%d games).", len(games))
	case modeDelete:
		n, err := importer.DeleteAll(ctx)
		if err != nil {
			return err
		}
		log.Printf("Data deleted successfully (%d games).", n)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts, err := parseFlags(os.Args[1:], cfg.SeedFile, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("seeder: %v", err)
	}
	if cfg.DBDriver == storage.DriverMemory {
		log.Fatalf("seeder: the memory driver does not persist between processes")
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg.Storage())
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.DBDriver, err)
	}
	defer store.Close(ctx)

	if err := seed(ctx, store.Games, opts); err != nil {
		log.Printf("seeder: %v", err)
		store.Close(ctx)
		os.Exit(1)
	}
}
