// Package identity resolves the acting user for a request. Authentication
// itself happens upstream; this layer only carries the resolved user id.
package identity

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header names the request header carrying the resolved user id.
const Header = "X-User-ID"

type contextKey struct{}

// Middleware extracts the user id header and stores it on the request
// context. Requests without a valid id are rejected before any handler runs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(Header))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing or invalid ` + Header + ` header"}`)) //nolint:errcheck
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}

// WithUserID returns a context carrying the given user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// UserID returns the user id stored on the request context. The boolean is
// false for requests that did not pass through Middleware.
func UserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(contextKey{}).(uuid.UUID)
	return id, ok
}
