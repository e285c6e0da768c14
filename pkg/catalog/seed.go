package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type seedGame struct {
	id    int64
	title string
	genre string
	price int64
}

type seedUser struct {
	id    int64
	name  string
	email string
}

type seedReview struct {
	id      int64
	gameID  int64
	userID  int64
	score   int
	comment string
}

var seedGames = []seedGame{
	{1, "Mario Kart", "Racing", 60},
	{2, "Breath of the Wild", "Adventure", 60},
	{3, "Stardew Valley", "Simulation", 15},
	{4, "Celeste", "Platformer", 20},
}

var seedUsers = []seedUser{
	{1, "Liza", "liza@example.com"},
	{2, "Duane", "duane@example.com"},
	{3, "Mo", "mo@example.com"},
}

var seedReviews = []seedReview{
	{1, 1, 1, 8, "A classic"},
	{2, 1, 2, 10, "Wow what a game"},
	{3, 2, 1, 10, "Lost a whole weekend to this"},
	{4, 3, 3, 9, "Dangerously cozy"},
	{5, 4, 2, 9, "Brutal and kind at once"},
}

// Seed inserts demo data. Inserts are keyed by fixed ids and skip existing
// rows, so seeding is idempotent.
func Seed(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC()

	for i, g := range seedGames {
		// Stagger creation times so newest-first ordering is deterministic.
		createdAt := now.Add(time.Duration(i-len(seedGames)) * time.Minute)
		_, err := db.ExecContext(ctx, `
			INSERT INTO games (id, title, genre, price, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (id) DO NOTHING
		`, g.id, g.title, g.genre, g.price, createdAt)
		if err != nil {
			return fmt.Errorf("failed to seed game %q: %w", g.title, err)
		}
	}

	for _, u := range seedUsers {
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (id, name, email, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, u.id, u.name, u.email, now)
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.name, err)
		}
	}

	for _, r := range seedReviews {
		_, err := db.ExecContext(ctx, `
			INSERT INTO reviews (id, game_id, user_id, score, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, r.id, r.gameID, r.userID, r.score, r.comment, now)
		if err != nil {
			return fmt.Errorf("failed to seed review %d: %w", r.id, err)
		}
	}

	return nil
}
