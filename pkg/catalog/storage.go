package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup-by-identifier matches no row.
var ErrNotFound = errors.New("record not found")

// Store is the read-side persistence interface for the catalog. The HTTP
// surface is read-only; writes happen through migration and seeding.
type Store interface {
	// GetGame retrieves one game by id, ErrNotFound when absent.
	GetGame(ctx context.Context, id int64) (*Game, error)

	// ListGames lists games newest first, capped at limit.
	ListGames(ctx context.Context, limit int) ([]*Game, error)

	// GetReview retrieves one review by id, ErrNotFound when absent.
	GetReview(ctx context.Context, id int64) (*Review, error)

	// ListReviews lists reviews newest first, capped at limit.
	ListReviews(ctx context.Context, limit int) ([]*Review, error)

	// ListReviewsByGame lists a game's reviews in insertion order.
	ListReviewsByGame(ctx context.Context, gameID int64) ([]*Review, error)

	// ListReviewsByUser lists a user's reviews in insertion order.
	ListReviewsByUser(ctx context.Context, userID int64) ([]*Review, error)

	// GetUser retrieves one user by id, ErrNotFound when absent.
	GetUser(ctx context.Context, id int64) (*User, error)

	// ListUsers lists users in insertion order, capped at limit.
	ListUsers(ctx context.Context, limit int) ([]*User, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// Cache kinds selectable via configuration.
const (
	CacheNone  = "none"
	CacheLRU   = "lru"
	CacheRedis = "redis"
)

// Config holds catalog storage configuration.
type Config struct {
	// Driver is the database/sql driver name: "sqlite3" or "postgres".
	Driver string
	// DSN is the driver-specific data source name.
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// ListLimit caps every list endpoint. There is no client-driven paging.
	ListLimit int

	// Cache selects the read-through cache layer: none, lru, or redis.
	Cache string

	// LRUSize is the per-entity cache capacity when Cache is "lru".
	LRUSize int

	// Redis settings, used when Cache is "redis".
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
}

// DefaultConfig returns a local SQLite configuration.
func DefaultConfig() Config {
	return Config{
		Driver:          "sqlite3",
		DSN:             "file:critique.db?_foreign_keys=on",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ListLimit:       20,
		Cache:           CacheNone,
		LRUSize:         1024,
		RedisAddr:       "localhost:6379",
		RedisTTL:        5 * time.Minute,
	}
}
