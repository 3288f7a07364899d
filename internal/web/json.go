// Package web holds the JSON plumbing shared by every handler package.
package web

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a FastAPI-compatible error body: {"detail": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"detail": msg})
}

// Decode reads a JSON request body into dst, capped at 1 MiB. Unknown fields
// are ignored for compatibility with older clients.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}
