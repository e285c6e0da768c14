package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore is a shared read-through cache over a Store, for deployments
// running more than one API replica. Entries are JSON-encoded with a TTL;
// cache failures fall through to the wrapped store rather than failing the
// request.
type RedisStore struct {
	Store

	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis using cfg and wraps store. The connection
// is verified with a ping before use.
func NewRedisStore(store Store, cfg Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.RedisTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStore{Store: store, client: client, ttl: ttl}, nil
}

// GetGame returns the cached game or falls through to the wrapped store.
func (s *RedisStore) GetGame(ctx context.Context, id int64) (*Game, error) {
	key := fmt.Sprintf("game:%d", id)
	game := &Game{}
	if s.cacheGet(ctx, key, game) {
		return game, nil
	}
	game, err := s.Store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, game)
	return game, nil
}

// GetReview returns the cached review or falls through to the wrapped store.
func (s *RedisStore) GetReview(ctx context.Context, id int64) (*Review, error) {
	key := fmt.Sprintf("review:%d", id)
	review := &Review{}
	if s.cacheGet(ctx, key, review) {
		return review, nil
	}
	review, err := s.Store.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, review)
	return review, nil
}

// GetUser returns the cached user or falls through to the wrapped store.
func (s *RedisStore) GetUser(ctx context.Context, id int64) (*User, error) {
	key := fmt.Sprintf("user:%d", id)
	user := &User{}
	if s.cacheGet(ctx, key, user) {
		return user, nil
	}
	user, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, user)
	return user, nil
}

// Ping checks both the cache and the wrapped store.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return s.Store.Ping(ctx)
}

// Close closes the Redis connection and the wrapped store.
func (s *RedisStore) Close() error {
	cacheErr := s.client.Close()
	if err := s.Store.Close(); err != nil {
		return err
	}
	return cacheErr
}

func (s *RedisStore) cacheGet(ctx context.Context, key string, dest any) bool {
	cached, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (s *RedisStore) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Best effort: a failed SET only costs a future cache miss.
	s.client.Set(ctx, key, data, s.ttl)
}
