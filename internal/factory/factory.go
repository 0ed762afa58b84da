package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pocha-games/partyroom/internal/api"
	"github.com/pocha-games/partyroom/internal/dependencies/clock"
	"github.com/pocha-games/partyroom/internal/dependencies/random"
	"github.com/pocha-games/partyroom/internal/services/leaderboard"
	"github.com/pocha-games/partyroom/internal/services/registry"
	"github.com/pocha-games/partyroom/internal/services/room"
	"github.com/pocha-games/partyroom/internal/storage"
	"github.com/pocha-games/partyroom/internal/storage/memory"
	redisstorage "github.com/pocha-games/partyroom/internal/storage/redis"
	"github.com/pocha-games/partyroom/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage (leaderboards only; rooms are in-process state)
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry    *registry.Registry
	Hub         *ws.Hub
	Engine      *room.Engine
	Leaderboard *leaderboard.Service
	Reaper      *room.Reaper

	// HTTP surface
	Router http.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the leaderboard backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ReapInterval is how often idle players are swept (optional)
	ReapInterval time.Duration
	// IdleTimeout is how long a player may stay silent before being swept (optional)
	IdleTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	reapInterval := cfg.ReapInterval
	if reapInterval <= 0 {
		reapInterval = room.DefaultReapInterval
	}
	idleTimeout := cfg.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = room.DefaultIdleTimeout
	}

	reg := registry.New()
	hub := ws.NewHub(logger)
	lb := leaderboard.New(store, logger)
	engine := room.NewEngine(hub, lb, clk, rnd, logger)
	reaper := room.NewReaper(engine, reapInterval, idleTimeout, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Engine:      engine,
		Leaderboard: lb,
		WSHandler:   ws.NewHandler(hub, engine, reg, logger),
	})

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Registry:    reg,
		Hub:         hub,
		Engine:      engine,
		Leaderboard: lb,
		Reaper:      reaper,
		Router:      router,
	}
}
