package auth

import (
	"net/http"
	"strings"

	"github.com/K-s-c49/post-comment-web/apperror"
	"github.com/K-s-c49/post-comment-web/config"
)

// Middleware returns a handler wrapper that requires a valid bearer token.
// On success the verified claims are placed in the request context; any
// failure short-circuits with a 401 envelope.
func Middleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || scheme != "Bearer" || token == "" {
				WriteError(w, r, apperror.NewAuthError("Missing Bearer token", nil))
				return
			}

			claims, err := verifyToken(token, cfg.JWTSecret)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Invalid token", err))
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
