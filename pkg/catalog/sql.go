package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Drivers registered for Open; which one is used is configuration.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore implements Store over database/sql. Queries use $N placeholders,
// which both lib/pq and mattn/go-sqlite3 accept, so one implementation
// serves both drivers.
type SQLStore struct {
	db *sql.DB
}

// Open connects using cfg and returns a store with pool settings applied.
func Open(cfg Config) (*SQLStore, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return NewSQLStore(db), nil
}

// NewSQLStore wraps an existing database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB exposes the underlying handle for migration and health checks.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// GetGame retrieves one game by id.
func (s *SQLStore) GetGame(ctx context.Context, id int64) (*Game, error) {
	query := `
		SELECT id, title, genre, price, created_at, updated_at
		FROM games
		WHERE id = $1
	`
	game := &Game{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID, &game.Title, &game.Genre, &game.Price,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// ListGames lists games newest first.
func (s *SQLStore) ListGames(ctx context.Context, limit int) ([]*Game, error) {
	query := `
		SELECT id, title, genre, price, created_at, updated_at
		FROM games
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		game := &Game{}
		if err := rows.Scan(
			&game.ID, &game.Title, &game.Genre, &game.Price,
			&game.CreatedAt, &game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// GetReview retrieves one review by id.
func (s *SQLStore) GetReview(ctx context.Context, id int64) (*Review, error) {
	query := `
		SELECT id, game_id, user_id, score, comment, created_at
		FROM reviews
		WHERE id = $1
	`
	review := &Review{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.GameID, &review.UserID,
		&review.Score, &review.Comment, &review.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// ListReviews lists reviews newest first.
func (s *SQLStore) ListReviews(ctx context.Context, limit int) ([]*Review, error) {
	query := `
		SELECT id, game_id, user_id, score, comment, created_at
		FROM reviews
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return s.queryReviews(ctx, query, limit)
}

// ListReviewsByGame lists a game's reviews in insertion order.
func (s *SQLStore) ListReviewsByGame(ctx context.Context, gameID int64) ([]*Review, error) {
	query := `
		SELECT id, game_id, user_id, score, comment, created_at
		FROM reviews
		WHERE game_id = $1
		ORDER BY id ASC
	`
	return s.queryReviews(ctx, query, gameID)
}

// ListReviewsByUser lists a user's reviews in insertion order.
func (s *SQLStore) ListReviewsByUser(ctx context.Context, userID int64) ([]*Review, error) {
	query := `
		SELECT id, game_id, user_id, score, comment, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY id ASC
	`
	return s.queryReviews(ctx, query, userID)
}

func (s *SQLStore) queryReviews(ctx context.Context, query string, arg any) ([]*Review, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID, &review.GameID, &review.UserID,
			&review.Score, &review.Comment, &review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetUser retrieves one user by id.
func (s *SQLStore) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`
	user := &User{}
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &email, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if email.Valid {
		user.Email = email.String
	}
	return user, nil
}

// ListUsers lists users in insertion order.
func (s *SQLStore) ListUsers(ctx context.Context, limit int) ([]*User, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		ORDER BY id ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		var email sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if email.Valid {
			user.Email = email.String
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Ping verifies database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
