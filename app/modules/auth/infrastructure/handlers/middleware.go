package authhandlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/stonecove-rowing/crewbot/pkg/jwt"
)

type contextKey string

const claimsKey contextKey = "crewbot.claims"

// ClaimsFromContext returns the validated claims RequireAuth stored, or
// nil outside an authenticated request.
func ClaimsFromContext(ctx context.Context) *jwt.ClubClaims {
	claims, _ := ctx.Value(claimsKey).(*jwt.ClubClaims)
	return claims
}

// RequireAuth validates the bearer token and stores the claims on the
// request context.
func RequireAuth(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the claims' role. Coaches pass every
// role check.
func RequireRole(role jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			if claims.Role != string(role) && claims.Role != string(jwt.RoleCoach) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
