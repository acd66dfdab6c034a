package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}

				log.Printf("[PANIC] RequestID=%s %s %s: %v\n%s",
					rid, r.Method, r.URL.Path, err, debug.Stack())

				// same error envelope as every other failure path
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
