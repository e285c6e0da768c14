// Package projection turns records and their associations into plain nested
// values according to a declarative directive.
//
// # Overview
//
// A Directive describes which own fields of a record to keep (Only) and which
// associations to descend into (Include), recursively. The Engine evaluates a
// directive against a Record using a static Schema that declares every record
// type's fields and associations up front. Association lookups are delegated
// to the Record implementation, so the engine itself performs no I/O.
//
// # Schema
//
// Declare the relation graph once at startup:
//
//	schema := projection.MustNewSchema(
//		projection.TypeDef{
//			Name:   "game",
//			Fields: []string{"id", "title", "genre", "price"},
//			Associations: []projection.Association{
//				{Name: "reviews", Target: "review", Cardinality: projection.Many},
//			},
//		},
//		projection.TypeDef{
//			Name:   "review",
//			Fields: []string{"id", "score", "comment"},
//			Associations: []projection.Association{
//				{Name: "user", Target: "user", Cardinality: projection.One},
//			},
//		},
//		projection.TypeDef{Name: "user", Fields: []string{"id", "name"}},
//	)
//
// # Directives
//
// Build directives statically, per call site:
//
//	directive := projection.Only("title", "genre", "price").
//		With("reviews", projection.Only("comment", "score").
//			With("user", projection.Only("name")))
//
// # Projection
//
//	engine := projection.New(schema)
//	out, err := engine.ProjectRecord(ctx, record, directive)
//
// The result is an *Object whose JSON encoding preserves declared field order
// followed by included associations in directive order. A directive naming an
// association the schema does not declare returns a *ConfigurationError; a
// missing one-association renders as null and an empty many-association as an
// empty list, never as an error.
package projection
