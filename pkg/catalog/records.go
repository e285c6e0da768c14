package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadehq/critique/pkg/projection"
)

// Record type names as declared in Schema.
const (
	TypeGame   = "game"
	TypeReview = "review"
	TypeUser   = "user"
)

// Schema declares the catalog's relation graph for the projection engine.
// Built once at startup; the engine treats it as immutable.
func Schema() *projection.Schema {
	return projection.MustNewSchema(
		projection.TypeDef{
			Name:   TypeGame,
			Fields: []string{"id", "title", "genre", "price", "created_at"},
			Associations: []projection.Association{
				{Name: "reviews", Target: TypeReview, Cardinality: projection.Many},
			},
		},
		projection.TypeDef{
			Name:   TypeReview,
			Fields: []string{"id", "score", "comment", "created_at"},
			Associations: []projection.Association{
				{Name: "user", Target: TypeUser, Cardinality: projection.One},
				{Name: "game", Target: TypeGame, Cardinality: projection.One},
			},
		},
		projection.TypeDef{
			Name:   TypeUser,
			Fields: []string{"id", "name", "email", "created_at"},
			Associations: []projection.Association{
				{Name: "reviews", Target: TypeReview, Cardinality: projection.Many},
			},
		},
	)
}

// GameRecord adapts a Game to projection.Record, resolving its reviews
// through the Store.
type GameRecord struct {
	store Store
	game  *Game
}

// NewGameRecord wraps a game for projection.
func NewGameRecord(store Store, game *Game) *GameRecord {
	return &GameRecord{store: store, game: game}
}

// GameRecords wraps a game slice preserving order.
func GameRecords(store Store, games []*Game) []projection.Record {
	records := make([]projection.Record, 0, len(games))
	for _, g := range games {
		records = append(records, NewGameRecord(store, g))
	}
	return records
}

func (r *GameRecord) RecordType() string { return TypeGame }

func (r *GameRecord) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return r.game.ID, true
	case "title":
		return r.game.Title, true
	case "genre":
		return r.game.Genre, true
	case "price":
		return r.game.Price, true
	case "created_at":
		return r.game.CreatedAt, true
	default:
		return nil, false
	}
}

func (r *GameRecord) RelatedOne(_ context.Context, name string) (projection.Record, error) {
	return nil, fmt.Errorf("game has no one-association %q", name)
}

func (r *GameRecord) RelatedMany(ctx context.Context, name string) ([]projection.Record, error) {
	if name != "reviews" {
		return nil, fmt.Errorf("game has no many-association %q", name)
	}
	reviews, err := r.store.ListReviewsByGame(ctx, r.game.ID)
	if err != nil {
		return nil, err
	}
	return ReviewRecords(r.store, reviews), nil
}

// ReviewRecord adapts a Review to projection.Record, resolving its author
// and game through the Store.
type ReviewRecord struct {
	store  Store
	review *Review
}

// NewReviewRecord wraps a review for projection.
func NewReviewRecord(store Store, review *Review) *ReviewRecord {
	return &ReviewRecord{store: store, review: review}
}

// ReviewRecords wraps a review slice preserving order.
func ReviewRecords(store Store, reviews []*Review) []projection.Record {
	records := make([]projection.Record, 0, len(reviews))
	for _, rv := range reviews {
		records = append(records, NewReviewRecord(store, rv))
	}
	return records
}

func (r *ReviewRecord) RecordType() string { return TypeReview }

func (r *ReviewRecord) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return r.review.ID, true
	case "score":
		return r.review.Score, true
	case "comment":
		return r.review.Comment, true
	case "created_at":
		return r.review.CreatedAt, true
	default:
		return nil, false
	}
}

func (r *ReviewRecord) RelatedOne(ctx context.Context, name string) (projection.Record, error) {
	switch name {
	case "user":
		user, err := r.store.GetUser(ctx, r.review.UserID)
		if errors.Is(err, ErrNotFound) {
			// A dangling author is absent data, not an error.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return NewUserRecord(r.store, user), nil
	case "game":
		game, err := r.store.GetGame(ctx, r.review.GameID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return NewGameRecord(r.store, game), nil
	default:
		return nil, fmt.Errorf("review has no one-association %q", name)
	}
}

func (r *ReviewRecord) RelatedMany(_ context.Context, name string) ([]projection.Record, error) {
	return nil, fmt.Errorf("review has no many-association %q", name)
}

// UserRecord adapts a User to projection.Record, resolving their reviews
// through the Store.
type UserRecord struct {
	store Store
	user  *User
}

// NewUserRecord wraps a user for projection.
func NewUserRecord(store Store, user *User) *UserRecord {
	return &UserRecord{store: store, user: user}
}

// UserRecords wraps a user slice preserving order.
func UserRecords(store Store, users []*User) []projection.Record {
	records := make([]projection.Record, 0, len(users))
	for _, u := range users {
		records = append(records, NewUserRecord(store, u))
	}
	return records
}

func (r *UserRecord) RecordType() string { return TypeUser }

func (r *UserRecord) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return r.user.ID, true
	case "name":
		return r.user.Name, true
	case "email":
		return r.user.Email, true
	case "created_at":
		return r.user.CreatedAt, true
	default:
		return nil, false
	}
}

func (r *UserRecord) RelatedOne(_ context.Context, name string) (projection.Record, error) {
	return nil, fmt.Errorf("user has no one-association %q", name)
}

func (r *UserRecord) RelatedMany(ctx context.Context, name string) ([]projection.Record, error) {
	if name != "reviews" {
		return nil, fmt.Errorf("user has no many-association %q", name)
	}
	reviews, err := r.store.ListReviewsByUser(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}
	return ReviewRecords(r.store, reviews), nil
}
