package server

import (
	"net/http"
	"strings"

	"github.com/agbru/seqcalc/internal/series"
)

// SecurityConfig controls CORS and the request limits of the API.
type SecurityConfig struct {
	EnableCORS bool
	// AllowedOrigins may contain "*" to accept any origin.
	AllowedOrigins []string
	AllowedMethods []string
	// MaxTerms is the largest 'terms' value /evaluate accepts.
	MaxTerms int
}

func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxTerms:       series.MaxTermsLimit,
	}
}

var hardeningHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// matchOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when origin is not allowed.
func (c SecurityConfig) matchOrigin(origin string) string {
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return o
		}
	}
	return ""
}

// SecurityMiddleware sets hardening headers on every response. With CORS
// enabled it also answers preflight requests itself.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range hardeningHeaders {
			h.Set(kv[0], kv[1])
		}
		if !cfg.EnableCORS {
			next(w, r)
			return
		}

		if allowed := cfg.matchOrigin(r.Header.Get("Origin")); allowed != "" {
			h.Set("Access-Control-Allow-Origin", allowed)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			h.Set("Access-Control-Max-Age", "86400")
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
