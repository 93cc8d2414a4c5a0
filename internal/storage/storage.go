// Package storage opens the configured persistence backend and owns its lifecycle.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"igames/internal/models"
	"igames/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config selects and addresses the backend.
type Config struct {
	Driver        string
	DSN           string // postgres or sqlite
	MongoURI      string
	MongoDatabase string
}

// Store bundles the repositories of one backend.
type Store struct {
	Driver string
	Users  repositories.UserRepository
	Games  repositories.GameStore

	close func(context.Context) error
}

// Open connects to the backend named by cfg.Driver and prepares its schema or indexes.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return openGORM(cfg.Driver, postgres.Open(cfg.DSN))
	case DriverSQLite:
		return openGORM(cfg.Driver, sqlite.Open(cfg.DSN))
	case DriverMongo:
		return openMongo(ctx, cfg)
	case DriverMemory:
		return &Store{
			Driver: DriverMemory,
			Users:  repositories.NewMemoryUserRepository(),
			Games:  repositories.NewMemoryGameRepository(),
			close:  func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func openGORM(driver string, dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Game{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	log.Printf("Connected to %s database", driver)
	return &Store{
		Driver: driver,
		Users:  repositories.NewGORMUserRepository(db),
		Games:  repositories.NewGORMGameRepository(db),
		close:  func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required for the mongo driver")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	users := repositories.NewMongoUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Printf("Connected to MongoDB database %s", cfg.MongoDatabase)
	return &Store{
		Driver: DriverMongo,
		Users:  users,
		Games:  repositories.NewMongoGameRepository(db),
		close:  client.Disconnect,
	}, nil
}
