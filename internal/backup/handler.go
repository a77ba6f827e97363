package backup

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/moodle"
)

// Recorder persists a summary of every archive served.
type Recorder interface {
	Record(ctx context.Context, res *BuildResult) error
}

type Handler struct {
	builder  Builder
	data     *course.Data
	recorder Recorder
}

func NewHandler(builder Builder, data *course.Data, recorder Recorder) *Handler {
	return &Handler{builder: builder, data: data, recorder: recorder}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var buf bytes.Buffer
	res, err := h.builder.Write(r.Context(), &buf)
	if err != nil {
		log.WithError(err).Error("Failed to build backup archive")
		http.Error(w, "failed to build backup", http.StatusInternalServerError)
		return
	}

	if h.recorder != nil {
		if err := h.recorder.Record(r.Context(), res); err != nil {
			log.WithError(err).Warn("Failed to record backup run")
		}
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DefaultFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Backup-Run-Id", res.RunID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).Warn("Client went away during download")
	}
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"filename": DefaultFilename,
		"entries":  moodle.EntryPaths(),
	})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.data.QuestionBank.Questions)
}
