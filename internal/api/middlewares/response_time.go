package middlewares

import (
	"net/http"
	"time"
)

type rtWriter struct {
	http.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *rtWriter) stamp() {
	if !w.stamped {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.stamped = true
	}
}

func (w *rtWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func ResponseTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &rtWriter{ResponseWriter: w, start: time.Now()}
		next.ServeHTTP(rw, r)

		// nothing written (e.g. 204/HEAD): stamp now
		rw.stamp()
	})
}
