// Package middleware provides HTTP middleware for the agent API.
package middleware

import "net/http"

// CORS returns middleware that handles cross-origin requests from the
// frontend. A "*" entry admits any origin without credentials.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && originAllowed(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				// Credentials only for explicitly listed origins. Echoing a
				// wildcard-matched origin with Allow-Credentials enables CSRF.
				if originListed(allowedOrigins, origin) {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func originListed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o != "*" && o == origin {
			return true
		}
	}
	return false
}
