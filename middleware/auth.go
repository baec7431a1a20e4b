package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/onandoff/onandoff-api/auth"
	"github.com/onandoff/onandoff-api/models"
	"github.com/onandoff/onandoff-api/stores"
)

type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user attached by AuthGate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// AuthGate validates the bearer token on every request outside the
// allow-list, resolves the caller's user row and attaches it to the
// request context. Verification is stateless; nothing is kept between
// requests.
func AuthGate(users stores.UserStore, secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAllowListed(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, r)
				return
			}

			username, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "), secretKey)
			if err != nil {
				unauthorized(w, r)
				return
			}

			user, err := users.ByUsername(username)
			if err != nil {
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isAllowListed(path string) bool {
	exactPaths := []string{
		"/",
		"/api/health",
		"/api/auth/signup",
		"/api/auth/login",
		"/api/auth/health",
		"/favicon.ico",
	}
	for _, p := range exactPaths {
		if path == p {
			return true
		}
	}
	prefixPaths := []string{"/uploads/", "/swagger", "/api-docs"}
	for _, p := range prefixPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// API callers get a structured 401; browser navigations are redirected to
// the login page.
func unauthorized(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
