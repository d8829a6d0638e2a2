package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of exact origins to allow
	// (e.g. "https://shop.example.com").
	AllowedOrigins []string

	// AllowLocalhost, when set, additionally allows any
	// "http://localhost:<port>" origin regardless of port. This is how
	// local frontends talk to the service during development.
	AllowLocalhost bool

	// AllowedMethods is the list of allowed HTTP methods.
	// Defaults to GET, POST, OPTIONS if empty.
	AllowedMethods []string

	// AllowedHeaders is the list of allowed request headers.
	// Defaults to Content-Type, Accept, Origin if empty.
	AllowedHeaders []string

	// MaxAge is how long (in seconds) preflight results can be cached.
	// Defaults to 3600 if 0.
	MaxAge int
}

// DefaultCORSConfig returns the policy used by the marketplace API:
// localhost frontends on any port, GET/POST/OPTIONS, JSON headers.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowLocalhost: true,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin"},
		MaxAge:         3600,
	}
}

// isLocalhostOrigin reports whether the origin is http://localhost with any
// (or no) port.
func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Scheme == "http" && u.Hostname() == "localhost"
}

// CORS returns middleware that handles Cross-Origin Resource Sharing headers
// based on the provided configuration. Origins that match neither the
// allowlist nor the localhost rule receive no allow-origin header, which
// makes the browser reject the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Content-Type", "Accept", "Origin"}
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 3600
	}

	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		originSet[o] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if origin != "" {
				if _, ok := originSet[origin]; ok {
					allowed = true
				} else if cfg.AllowLocalhost && isLocalhostOrigin(origin) {
					allowed = true
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
			}

			// Preflight requests get an empty success response.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
