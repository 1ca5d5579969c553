package handler

import (
	"net/http"

	"github.com/inclusionhub/backend/internal/repository"
)

// Handler holds the cross-cutting pieces: CORS and the health check.
type Handler struct {
	db          repository.Pinger
	frontendURL string
}

// New creates a Handler. db may be nil when the store has no connection to
// check, in which case Health always reports ok.
func New(db repository.Pinger, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
