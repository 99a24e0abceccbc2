package server

import "net/http"

// Middleware wraps a handler with cross-cutting behaviour such as logging.
type Middleware func(http.Handler) http.Handler

// Handler groups endpoints that share state. Routes returns method patterns
// like "GET /api/deck".
type Handler interface {
	http.Handler
	Routes() []string
}
