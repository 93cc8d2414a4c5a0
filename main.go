package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"igames/internal/auth"
	"igames/internal/config"
	"igames/internal/handlers"
	"igames/internal/metrics"
	"igames/internal/services"
	"igames/internal/storage"
	"igames/pkg/rabbitmq"
)

const startupTimeout = 10 * time.Second

// App is the wired HTTP server together with the resources it owns.
type App struct {
	Fiber *fiber.App
	store *storage.Store
	mq    *rabbitmq.Client
}

// NewApp opens storage and the broker named by cfg and builds the route table.
func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// --- Storage ---
	store, err := storage.Open(ctx, cfg.Storage())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.DBDriver, err)
	}

	// --- RabbitMQ (optional) ---
	var (
		mqClient *rabbitmq.Client
		events   services.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			store.Close(ctx)
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; account events are disabled")
	}

	// --- Services ---
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(store.Users, tokens, events)
	accountService := services.NewAccountService(store.Users, store.Games, events)
	gameService := services.NewGameService(store.Games)

	// --- Handlers ---
	gameHandler := handlers.NewGameHandler(gameService)
	userHandler := handlers.NewUserHandler(authService, accountService)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	if cfg.MetricsEnabled {
		recorder := metrics.NewRecorder()
		app.Use(recorder.Middleware())
		app.Get("/metrics", recorder.Handler())
	}

	// --- API Routes ---
	api := app.Group("/api")
	gameHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"storage":  store.Driver,
			"rabbitMQ": mqClient != nil,
		})
	})

	return &App{Fiber: app, store: store, mq: mqClient}, nil
}

// Shutdown stops the HTTP server and releases storage and broker connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if err := a.mq.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("storage close: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Printf("Starting server on port %s (storage: %s)", cfg.AppPort, cfg.DBDriver)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
