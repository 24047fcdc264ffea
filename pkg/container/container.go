package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookService "library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/rating"
	reviewHandler "library-catalog/internal/domains/review/handler"
	reviewService "library-catalog/internal/domains/review/service"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/store"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
// Build order: config -> infrastructure -> store -> services -> handlers.
type Container struct {
	Config *config.Config

	// INFRASTRUCTURE (nil DB when STORE_DRIVER=memory)
	DB    *database.PostgresDB
	Store store.Gateway

	// SERVICES
	Ratings       *rating.Aggregator
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface

	// HANDLERS
	BookHandler   *bookHandler.Handler
	ReviewHandler *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("environment", cfg.App.Environment).Str("store", cfg.Store.Driver).Msg("initializing container")

	c := &Container{Config: cfg}

	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore(ctx context.Context) error {
	if c.Config.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		c.Store = store.NewMemory()
		return nil
	}

	db := database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	collector := database.NewPoolStatsCollector(db.Pool, c.Config.App.Name)
	if err := prometheus.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return fmt.Errorf("register pool collector: %w", err)
		}
	}

	c.Store = store.NewPostgres(db.Pool)
	return nil
}

func (c *Container) initServices() {
	c.Ratings = rating.NewAggregator(c.Store)
	c.BookService = bookService.NewService(c.Store, c.Ratings)
	c.ReviewService = reviewService.NewReviewService(c.Store)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// HealthCheck pings the configured store.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.HealthCheck(ctx)
	}
	return c.Store.Ping(ctx)
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleanup completed")
}
