package http

import (
	"net/http"
	"strings"

	"github.com/endgor/azure-ip-lookup/internal/auth"
)

func (a *API) authMiddleware(next http.Handler) http.Handler {
	if a.Authenticator == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		principal, err := a.Authenticator.Authenticate(r.Context(), strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// isPublicPath exempts health probes, the swagger UI and the read-only
// lookup endpoints; plan management always requires a token.
func isPublicPath(path string) bool {
	if path == "/healthz" || path == "/readyz" {
		return true
	}
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	if path == "/api/v1/ipaddress" || path == "/api/v1/servicetags" || strings.HasPrefix(path, "/api/v1/servicetags/") {
		return true
	}
	return false
}
