package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that extracts the bearer token from the Authorization
// header and resolves it to an Identity. Missing or invalid tokens return 401.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Errors(w, http.StatusUnauthorized, "Authentication credentials were not provided")
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header || raw == "" {
				response.Errors(w, http.StatusUnauthorized, "Authorization header must be a bearer token")
				return
			}

			identity, err := authService.ParseAccess(raw)
			if err != nil {
				response.Errors(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
