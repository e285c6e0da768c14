package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/arcadehq/critique/pkg/catalog"
	"github.com/arcadehq/critique/pkg/httputil"
	"github.com/arcadehq/critique/pkg/observability"
	"github.com/arcadehq/critique/pkg/projection"
)

// Server is the catalog's HTTP API.
type Server struct {
	store     catalog.Store
	engine    *projection.Engine
	router    *mux.Router
	handler   http.Handler
	logger    logrus.FieldLogger
	metrics   *observability.Metrics
	listLimit int
}

// Options configures optional server collaborators.
type Options struct {
	// Logger for request and error logging. Defaults to the standard logrus
	// logger.
	Logger logrus.FieldLogger

	// Metrics instruments requests when non-nil.
	Metrics *observability.Metrics

	// ListLimit caps list endpoints. Defaults to the catalog default.
	ListLimit int
}

// NewServer creates the API server over a catalog store.
func NewServer(store catalog.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = catalog.DefaultConfig().ListLimit
	}

	s := &Server{
		store:     store,
		engine:    projection.New(catalog.Schema()),
		router:    mux.NewRouter(),
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		listLimit: opts.ListLimit,
	}

	s.setupRoutes()
	s.handler = httputil.Chain(s.router,
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
	)
	return s
}

// setupRoutes configures all the API routes.
func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Use(s.metrics.InstrumentHandler)
	}

	s.router.HandleFunc("/games", s.listGames).Methods("GET")
	s.router.HandleFunc("/games/{id}", s.getGame).Methods("GET")

	s.router.HandleFunc("/reviews", s.listReviews).Methods("GET")
	s.router.HandleFunc("/reviews/{id}", s.getReview).Methods("GET")

	s.router.HandleFunc("/users", s.listUsers).Methods("GET")
	s.router.HandleFunc("/users/{id}", s.getUser).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// listGames handles GET /games.
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames(r.Context(), s.listLimit)
	if err != nil {
		s.storageError(w, r, "list_games", err)
		return
	}

	out, err := s.engine.ProjectRecords(r.Context(), catalog.GameRecords(s.store, games), gameDirective)
	if err != nil {
		s.projectionError(w, r, "list_games", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

// getGame handles GET /games/{id}.
func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	game, err := s.store.GetGame(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		httputil.WriteNotFoundError(w, "game not found")
		return
	}
	if err != nil {
		s.storageError(w, r, "get_game", err)
		return
	}

	out, err := s.engine.ProjectRecord(r.Context(), catalog.NewGameRecord(s.store, game), gameDirective)
	if err != nil {
		s.projectionError(w, r, "get_game", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

// listReviews handles GET /reviews.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviews(r.Context(), s.listLimit)
	if err != nil {
		s.storageError(w, r, "list_reviews", err)
		return
	}

	out, err := s.engine.ProjectRecords(r.Context(), catalog.ReviewRecords(s.store, reviews), reviewDirective)
	if err != nil {
		s.projectionError(w, r, "list_reviews", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

// getReview handles GET /reviews/{id}.
func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	review, err := s.store.GetReview(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		httputil.WriteNotFoundError(w, "review not found")
		return
	}
	if err != nil {
		s.storageError(w, r, "get_review", err)
		return
	}

	out, err := s.engine.ProjectRecord(r.Context(), catalog.NewReviewRecord(s.store, review), reviewDirective)
	if err != nil {
		s.projectionError(w, r, "get_review", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

// listUsers handles GET /users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context(), s.listLimit)
	if err != nil {
		s.storageError(w, r, "list_users", err)
		return
	}

	out, err := s.engine.ProjectRecords(r.Context(), catalog.UserRecords(s.store, users), userDirective)
	if err != nil {
		s.projectionError(w, r, "list_users", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

// getUser handles GET /users/{id}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		httputil.WriteNotFoundError(w, "user not found")
		return
	}
	if err != nil {
		s.storageError(w, r, "get_user", err)
		return
	}

	out, err := s.engine.ProjectRecord(r.Context(), catalog.NewUserRecord(s.store, user), userDirective)
	if err != nil {
		s.projectionError(w, r, "get_user", err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) storageError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if s.metrics != nil {
		s.metrics.StorageErrorsTotal.WithLabelValues(operation).Inc()
	}
	s.logger.WithError(err).WithField("operation", operation).Error("storage failure")
	httputil.WriteInternalError(w, errors.New("storage unavailable"))
}

// projectionError covers both a failed association lookup and a
// *projection.ConfigurationError; the latter is a bug in our directives.
func (s *Server) projectionError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var confErr *projection.ConfigurationError
	if errors.As(err, &confErr) {
		s.logger.WithError(err).Error("invalid projection directive")
		httputil.WriteInternalError(w, errors.New("internal server error"))
		return
	}
	// Everything else a projection surfaces is a storage failure from an
	// association lookup, so it counts against the same metric as direct
	// store calls.
	if s.metrics != nil {
		s.metrics.StorageErrorsTotal.WithLabelValues(operation).Inc()
	}
	s.logger.WithError(err).WithField("operation", operation).Error("projection failure")
	httputil.WriteInternalError(w, errors.New("storage unavailable"))
}
