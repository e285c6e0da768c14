// Package api exposes the catalog over a read-only HTTP JSON API.
//
// # Routes
//
//	GET /games            list games, newest first
//	GET /games/{id}       one game with its reviews and their authors
//	GET /reviews          list reviews
//	GET /reviews/{id}     one review with its author and game
//	GET /users            list users
//	GET /users/{id}       one user with their reviews
//
// Every route serializes through pkg/projection using a directive fixed at
// compile time; clients cannot select fields. Missing records return a 404
// JSON error body. Writes are not part of this API.
package api
