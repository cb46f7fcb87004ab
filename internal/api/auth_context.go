package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/domain"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// identityKey is the context key for the resolved caller identity.
const identityKey ctxKey = "identity"

// IdentityFrom returns the caller identity stored in ctx, or nil for
// anonymous requests.
func IdentityFrom(ctx context.Context) *domain.Identity {
	ident, _ := ctx.Value(identityKey).(*domain.Identity)
	return ident
}

// withIdentity stores the identity in context.
func withIdentity(ctx context.Context, ident *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// identityMiddleware resolves Bearer tokens to identities.
// If no token is present or it is invalid, continues as anonymous.
// Services reject anonymous callers where a sign-in is required.
func identityMiddleware(provider *auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ident, err := provider.Authenticate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
		})
	}
}
