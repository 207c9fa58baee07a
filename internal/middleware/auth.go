package middleware

import (
	"net/http"
	"strings"

	"github.com/hydroapp/hydro/internal/auth"
)

// RequireAuth rejects requests without a valid session token. The token is
// read from the session cookie or, for non-browser clients, from a bearer
// Authorization header.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(auth.CookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" || !svc.VerifyToken(token) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
