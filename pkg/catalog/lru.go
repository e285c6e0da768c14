package catalog

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUStore is an in-process read-through cache over a Store. Lookups by id
// are cached per entity; list queries pass through. The API surface is
// read-only, so entries never need invalidation beyond eviction.
type LRUStore struct {
	Store

	games   *lru.Cache[int64, *Game]
	reviews *lru.Cache[int64, *Review]
	users   *lru.Cache[int64, *User]
}

// NewLRUStore wraps store with per-entity LRU caches of the given size.
func NewLRUStore(store Store, size int) (*LRUStore, error) {
	games, err := lru.New[int64, *Game](size)
	if err != nil {
		return nil, err
	}
	reviews, err := lru.New[int64, *Review](size)
	if err != nil {
		return nil, err
	}
	users, err := lru.New[int64, *User](size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{Store: store, games: games, reviews: reviews, users: users}, nil
}

// GetGame returns the cached game or falls through to the wrapped store.
func (s *LRUStore) GetGame(ctx context.Context, id int64) (*Game, error) {
	if game, ok := s.games.Get(id); ok {
		return game, nil
	}
	game, err := s.Store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	s.games.Add(id, game)
	return game, nil
}

// GetReview returns the cached review or falls through to the wrapped store.
func (s *LRUStore) GetReview(ctx context.Context, id int64) (*Review, error) {
	if review, ok := s.reviews.Get(id); ok {
		return review, nil
	}
	review, err := s.Store.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reviews.Add(id, review)
	return review, nil
}

// GetUser returns the cached user or falls through to the wrapped store.
func (s *LRUStore) GetUser(ctx context.Context, id int64) (*User, error) {
	if user, ok := s.users.Get(id); ok {
		return user, nil
	}
	user, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.users.Add(id, user)
	return user, nil
}
