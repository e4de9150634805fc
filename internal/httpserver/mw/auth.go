package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/auth"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// TokenValidator checks a presented bearer token.
type TokenValidator interface {
	Validate(token string) error
}

// RequireAdmin rejects requests without a valid "Authorization: Bearer" token.
func RequireAdmin(tokens TokenValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if err := tokens.Validate(token); err != nil {
				log.Debug("admin token rejected", logger.String("path", r.URL.Path))
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Invalid authentication")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
