package middleware

import (
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/httputil"
)

// publicPaths are reachable without a token
var publicPaths = map[string]bool{
	"/api/health":        true,
	"/api/auth/register": true,
	"/api/auth/login":    true,
}

// websocketPath is the upgrade endpoint. Browser WebSocket clients
// cannot set headers on the upgrade request, so this path also accepts
// the token as a query parameter.
const websocketPath = "/api/ws"

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context. Registration, login, and the health
// check stay public.
func AuthMiddleware(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				token = ""
				if r.URL.Path == websocketPath {
					token = r.URL.Query().Get("token")
				}
			}
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "access token is missing")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, claims.GetUserID(), claims.Username, claims.Role))
		})
	}
}
