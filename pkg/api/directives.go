package api

import "github.com/arcadehq/critique/pkg/projection"

// Per-endpoint projection directives. These are static by design: the
// exposed shape of each endpoint is owned by the server, never derived from
// request parameters.
var (
	gameDirective = projection.Only("title", "genre", "price").
			With("reviews", projection.Only("comment", "score").
				With("user", projection.Only("name")))

	reviewDirective = projection.Only("score", "comment").
			With("user", projection.Only("name")).
			With("game", projection.Only("title"))

	userDirective = projection.Only("name").
			With("reviews", projection.Only("score", "comment").
				With("game", projection.Only("title")))
)
