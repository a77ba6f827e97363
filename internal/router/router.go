package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/history"
)

type RouterConfig struct {
	BackupHandler *backup.Handler
	// HistoryHandler is nil when no database is configured.
	HistoryHandler *history.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/backup", backup.Routes(cfg.BackupHandler))
	r.Get("/questions", cfg.BackupHandler.ListQuestions)

	if cfg.HistoryHandler != nil {
		r.Mount("/history", history.Routes(cfg.HistoryHandler))
	}
	return r
}
