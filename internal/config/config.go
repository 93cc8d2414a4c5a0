// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"igames/internal/auth"
	"igames/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the server and the seeder read at startup.
type Config struct {
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	TokenTTL       time.Duration
	RabbitMQURL    string
	CORSOrigins    string
	MetricsEnabled bool
	SeedFile       string
}

// Load reads .env (if present) and the process environment into a Config.
// Callers that serve requests must also call Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		MongoURI:       v.GetString("MONGODB_URI"),
		MongoDatabase:  v.GetString("MONGODB_DATABASE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       ttl,
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		CORSOrigins:    v.GetString("CORS_ORIGINS"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		SeedFile:       v.GetString("SEED_FILE"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", storage.DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=igames port=5432 sslmode=disable")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "igames")
	v.SetDefault("TOKEN_TTL", auth.DefaultTokenTTL.String())
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SEED_FILE", "data/games-data.json")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.DBDriver {
	case storage.DriverPostgres, storage.DriverSQLite, storage.DriverMongo, storage.DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// Storage returns the persistence settings.
func (c *Config) Storage() storage.Config {
	return storage.Config{
		Driver:        c.DBDriver,
		DSN:           c.DatabaseDSN,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
	}
}
