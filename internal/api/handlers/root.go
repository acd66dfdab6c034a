package handlers

import "net/http"

// RootHandler answers the liveness probe the frontend pings on load.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("server running"))
}
