package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/field-clock/internal/http/handlers"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware keeps the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), handlers.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// paramsMiddleware handles common query parameters like 'verbose'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "request_id", handlers.RequestIDFromContext(r))
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			// Restored when the handler returns. Streams stay verbose for their lifetime.
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}
