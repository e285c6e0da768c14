// Package httputil provides HTTP utilities for standardized request/response
// handling.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteNotFoundError(w, "game not found")
//	httputil.WriteInternalError(w, err)
//
// # Request Parsing
//
//	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
//	if !ok {
//		return // error response already written
//	}
//
// # Middleware
//
//	httputil.Chain(handler,
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)
package httputil
