package backup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Download)
	r.Get("/entries", h.ListEntries)
	return r
}
