package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/examen-backup/internal/config"
)

type Handler struct {
	service HistoryService
}

func NewHandler(s HistoryService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list backup runs")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, runs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrInvalidID):
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	case errors.Is(err, ErrRunNotFound):
		http.Error(w, "backup run not found", http.StatusNotFound)
		return
	case err != nil:
		config.WithContext(r.Context()).WithError(err).Error("Failed to fetch backup run")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, run)
}
