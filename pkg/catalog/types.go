package catalog

import "time"

// Game is one catalog entry.
type Game struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Genre     string    `json:"genre" db:"genre"`
	Price     int64     `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Review is one user's review of one game.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	GameID    int64     `json:"game_id" db:"game_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Score     int       `json:"score" db:"score"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// User is a review author.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
