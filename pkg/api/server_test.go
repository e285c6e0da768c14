package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadehq/critique/pkg/catalog"
	"github.com/arcadehq/critique/pkg/observability"
)

// mockStore is an in-memory catalog.Store for handler tests.
type mockStore struct {
	games   map[int64]*catalog.Game
	reviews map[int64]*catalog.Review
	users   map[int64]*catalog.User

	listGamesErr         error
	listReviewsErr       error
	listUsersErr         error
	listReviewsByGameErr error
}

func newMockStore() *mockStore {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &mockStore{
		games: map[int64]*catalog.Game{
			1: {ID: 1, Title: "Mario Kart", Genre: "Racing", Price: 60, CreatedAt: now},
			2: {ID: 2, Title: "Celeste", Genre: "Platformer", Price: 20, CreatedAt: now.Add(time.Hour)},
		},
		reviews: map[int64]*catalog.Review{
			1: {ID: 1, GameID: 1, UserID: 1, Score: 8, Comment: "A classic", CreatedAt: now},
			2: {ID: 2, GameID: 1, UserID: 2, Score: 10, Comment: "Wow what a game", CreatedAt: now},
		},
		users: map[int64]*catalog.User{
			1: {ID: 1, Name: "Liza", Email: "liza@example.com", CreatedAt: now},
			2: {ID: 2, Name: "Duane", Email: "duane@example.com", CreatedAt: now},
		},
	}
}

func (m *mockStore) GetGame(_ context.Context, id int64) (*catalog.Game, error) {
	game, ok := m.games[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return game, nil
}

func (m *mockStore) ListGames(_ context.Context, limit int) ([]*catalog.Game, error) {
	if m.listGamesErr != nil {
		return nil, m.listGamesErr
	}
	// Newest first, as the SQL store orders.
	var games []*catalog.Game
	for _, id := range []int64{2, 1} {
		if g, ok := m.games[id]; ok && len(games) < limit {
			games = append(games, g)
		}
	}
	return games, nil
}

func (m *mockStore) GetReview(_ context.Context, id int64) (*catalog.Review, error) {
	review, ok := m.reviews[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return review, nil
}

func (m *mockStore) ListReviews(_ context.Context, limit int) ([]*catalog.Review, error) {
	if m.listReviewsErr != nil {
		return nil, m.listReviewsErr
	}
	var reviews []*catalog.Review
	for _, id := range []int64{1, 2} {
		if r, ok := m.reviews[id]; ok && len(reviews) < limit {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (m *mockStore) ListReviewsByGame(_ context.Context, gameID int64) ([]*catalog.Review, error) {
	if m.listReviewsByGameErr != nil {
		return nil, m.listReviewsByGameErr
	}
	var reviews []*catalog.Review
	for _, id := range []int64{1, 2} {
		if r, ok := m.reviews[id]; ok && r.GameID == gameID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (m *mockStore) ListReviewsByUser(_ context.Context, userID int64) ([]*catalog.Review, error) {
	var reviews []*catalog.Review
	for _, id := range []int64{1, 2} {
		if r, ok := m.reviews[id]; ok && r.UserID == userID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (m *mockStore) GetUser(_ context.Context, id int64) (*catalog.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return user, nil
}

func (m *mockStore) ListUsers(_ context.Context, limit int) ([]*catalog.User, error) {
	if m.listUsersErr != nil {
		return nil, m.listUsersErr
	}
	var users []*catalog.User
	for _, id := range []int64{1, 2} {
		if u, ok := m.users[id]; ok && len(users) < limit {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *mockStore) Ping(context.Context) error { return nil }
func (m *mockStore) Close() error               { return nil }

func newTestServer(store catalog.Store) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(store, Options{Logger: logger})
}

func doRequest(t *testing.T, server *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGetGame(t *testing.T) {
	server := newTestServer(newMockStore())

	t.Run("projects game with reviews and authors", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/games/1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		want := `{"title":"Mario Kart","genre":"Racing","price":60,` +
			`"reviews":[` +
			`{"score":8,"comment":"A classic","user":{"name":"Liza"}},` +
			`{"score":10,"comment":"Wow what a game","user":{"name":"Duane"}}]}` + "\n"
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("missing game returns 404", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/games/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"game not found"}`, rec.Body.String())
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/games/mario")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListGames(t *testing.T) {
	store := newMockStore()
	server := newTestServer(store)

	t.Run("lists newest first", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/games")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"title":"Celeste"`)
		assert.Less(t,
			strings.Index(body, "Celeste"), strings.Index(body, "Mario Kart"),
			"newest game must come first")
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		store.listGamesErr = errors.New("db down")
		defer func() { store.listGamesErr = nil }()

		rec := doRequest(t, server, http.MethodGet, "/games")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"storage unavailable"}`, rec.Body.String())
	})
}

func TestGetReview(t *testing.T) {
	store := newMockStore()
	server := newTestServer(store)

	t.Run("includes author and game", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/reviews/2")
		require.Equal(t, http.StatusOK, rec.Code)

		want := `{"score":10,"comment":"Wow what a game",` +
			`"user":{"name":"Duane"},"game":{"title":"Mario Kart"}}` + "\n"
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("dangling author renders null", func(t *testing.T) {
		store.reviews[3] = &catalog.Review{ID: 3, GameID: 1, UserID: 404, Score: 2, Comment: "who wrote this"}
		defer delete(store.reviews, 3)

		rec := doRequest(t, server, http.MethodGet, "/reviews/3")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user":null`)
	})

	t.Run("missing review returns 404", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/reviews/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	server := newTestServer(newMockStore())

	rec := doRequest(t, server, http.MethodGet, "/users/1")
	require.Equal(t, http.StatusOK, rec.Code)

	want := `{"name":"Liza","reviews":[` +
		`{"score":8,"comment":"A classic","game":{"title":"Mario Kart"}}]}` + "\n"
	assert.Equal(t, want, rec.Body.String())

	t.Run("missing user returns 404", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/users/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListUsers(t *testing.T) {
	server := newTestServer(newMockStore())

	rec := doRequest(t, server, http.MethodGet, "/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Liza"`)
	assert.Contains(t, rec.Body.String(), `"name":"Duane"`)
}

func TestWritesRejected(t *testing.T) {
	server := newTestServer(newMockStore())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := doRequest(t, server, method, "/games")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
}

func TestProjectionStorageFailureCounted(t *testing.T) {
	store := newMockStore()
	store.listReviewsByGameErr = errors.New("db down")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	server := NewServer(store, Options{Logger: logger, Metrics: metrics})

	rec := doRequest(t, server, http.MethodGet, "/games/1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"storage unavailable"}`, rec.Body.String())

	count := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("get_game"))
	assert.Equal(t, 1.0, count, "association lookup failures must count as storage errors")
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(newMockStore())

	rec := doRequest(t, server, http.MethodGet, "/games")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
