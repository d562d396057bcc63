// Package middleware contains the HTTP middleware applied to protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"lojabackend/pkg/auth"
)

type contextKey string

const UserIDContextKey = contextKey("userID")

// AuthMiddleware verifies the Bearer token in the Authorization header and
// puts the token subject into the request context. Requests without a valid
// token are rejected with 401 before reaching the handler.
func AuthMiddleware(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			token, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				http.Error(w, "Invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}

			subject, ok := token.Subject()
			if !ok {
				http.Error(w, "no claim `sub`", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDContextKey, subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextUserID retrieves the user ID from the context.
func ContextUserID(ctx context.Context) string {
	value := ctx.Value(UserIDContextKey)
	if value != nil {
		return value.(string)
	}
	return ""
}
