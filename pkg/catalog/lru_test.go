package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUStoreGetGame(t *testing.T) {
	store := marioKartStore()
	cached, err := NewLRUStore(store, 8)
	require.NoError(t, err)

	game, err := cached.GetGame(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mario Kart", game.Title)
	assert.Equal(t, 1, store.getGameCalls)

	// Second lookup must be served from cache.
	again, err := cached.GetGame(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, game, again)
	assert.Equal(t, 1, store.getGameCalls)
}

func TestLRUStoreDoesNotCacheMisses(t *testing.T) {
	store := marioKartStore()
	cached, err := NewLRUStore(store, 8)
	require.NoError(t, err)

	_, err = cached.GetUser(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = cached.GetUser(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.getUserCalls)
}

func TestLRUStoreEviction(t *testing.T) {
	store := marioKartStore()
	cached, err := NewLRUStore(store, 1)
	require.NoError(t, err)

	_, err = cached.GetUser(context.Background(), 1)
	require.NoError(t, err)
	_, err = cached.GetUser(context.Background(), 2)
	require.NoError(t, err)

	// User 1 was evicted by the size-1 cache.
	_, err = cached.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, store.getUserCalls)
}

func TestLRUStoreListsPassThrough(t *testing.T) {
	store := marioKartStore()
	cached, err := NewLRUStore(store, 8)
	require.NoError(t, err)

	reviews, err := cached.ListReviewsByGame(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
