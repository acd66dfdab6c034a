package middlewares

import (
	"log"
	"net/http"
	"os"
	"strings"
)

// Origins the deployed frontend calls from; extendable via ALLOWED_ORIGINS
// (comma-separated) without a rebuild.
var allowedOrigins = []string{
	"https://b9a11-client-side-protim1451.web.app",
	"https://b9a11-client-side-protim1451.firebaseapp.com",
	"http://localhost:5173",
}

func Cors(next http.Handler) http.Handler {
	origins := allowedOrigins
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	allowed := func(origin string) bool {
		for _, o := range origins {
			if o == origin {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !allowed(origin) {
			log.Printf("[CORS] Blocked request from origin: %s on %s %s\n",
				origin, r.Method, r.URL.Path)
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return
		}

		if allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}

		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Expose-Headers",
			"X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After, X-Response-Time")

		if r.Method == http.MethodOptions {
			w.Header().Add("Vary", "Access-Control-Request-Method")
			w.Header().Add("Vary", "Access-Control-Request-Headers")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
