// Package catalog holds the game-review domain model and its persistence.
//
// # Overview
//
// The catalog stores three entities: games, the reviews written about them,
// and the users who wrote the reviews. Store is the read interface; SQLStore
// implements it over database/sql and works against both SQLite and
// PostgreSQL. LRUStore and RedisStore are optional read-through cache layers
// wrapping any Store.
//
// The package also bridges the domain into pkg/projection: Schema declares
// the relation graph (game -> reviews, review -> user/game, user -> reviews)
// and the *Record adapters expose stored entities as projection records,
// resolving associations through the Store.
//
// # Usage Example
//
//	store, err := catalog.Open("sqlite3", "file:catalog.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	game, err := store.GetGame(ctx, 1)
//	record := catalog.NewGameRecord(store, game)
//	out, err := engine.ProjectRecord(ctx, record, directive)
//
// # Related Packages
//
//   - pkg/projection: directive evaluation over Record adapters
//   - pkg/api: HTTP handlers calling into Store
package catalog
