package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const runIDKey ctxKey = "run_id"

var Logger = logrus.New()

func Init(level logrus.Level) {
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(level)
}

// LogLevel parses LOG_LEVEL, falling back to info.
func LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(Get("LOG_LEVEL", "info"))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

func RunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	return id, ok
}

// WithContext returns a log entry tagged with the request and run ids
// found in ctx.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if runID, ok := RunIDFromContext(ctx); ok {
		entry = entry.WithField("run_id", runID.String())
	}
	return entry
}
