package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobboard/jobboard/internal/shared"
)

// Middleware resolves bearer tokens into actors.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate stores the resolved actor in the request context. Missing
// or unknown tokens resolve to the anonymous actor; downstream policies
// decide whether that is acceptable.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		actor, err := m.Service.ResolveActor(r.Context(), token)
		if err != nil {
			if m.Logger != nil && !shared.IsUnauthorized(err) {
				m.Logger.Error("resolve bearer token", slog.Any("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}
		ctx := shared.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
