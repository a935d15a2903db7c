package auth

import (
	"context"
	"net/http"

	"github.com/artiklar/identity-api/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// ClaimsContextKey holds the verified *TokenClaims for the request.
	ClaimsContextKey ContextKey = "token_claims"
)

// Middleware gates protected routes behind the authorization extractor.
type Middleware struct {
	extractor *Extractor
}

func NewMiddleware(extractor *Extractor) *Middleware {
	return &Middleware{extractor: extractor}
}

// RequireAuth rejects requests whose bearer token is absent or fails
// verification, and stores the verified claims in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := m.extractor.Extract(requestMetadata(r))

		switch result.Status {
		case StatusMissing:
			httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		case StatusUnauthorized:
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, result.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestMetadata adapts HTTP headers to the transport-agnostic metadata
// map the extractor works on. Header lookup is case-insensitive in
// net/http, so a single lowercase entry is enough.
func requestMetadata(r *http.Request) map[string]string {
	metadata := make(map[string]string, 1)
	if v := r.Header.Get("Authorization"); v != "" {
		metadata["authorization"] = v
	}
	return metadata
}

// GetClaimsFromContext extracts the verified token claims from the request context
func GetClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*TokenClaims)
	return claims, ok
}
