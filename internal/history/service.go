package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var (
	ErrRunNotFound = errors.New("backup run not found")
	ErrInvalidID   = errors.New("invalid id format")
)

type HistoryService interface {
	Record(ctx context.Context, res *backup.BuildResult) error
	GetRun(ctx context.Context, id string) (*BackupRun, error)
	ListRuns(ctx context.Context, limit int) ([]*BackupRun, error)
}

type historyService struct {
	repo BackupRunRepository
}

func NewService(repo BackupRunRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Record(ctx context.Context, res *backup.BuildResult) error {
	log := config.WithContext(ctx)

	entries, err := json.Marshal(res.EntryPaths())
	if err != nil {
		return err
	}

	id := res.RunID
	if id == uuid.Nil {
		id = uuid.New()
	}

	run := &BackupRun{
		ID:          id,
		GeneratedAt: res.Timestamp,
		SizeBytes:   res.Size,
		EntryCount:  res.EntryCount(),
		SHA256:      res.SHA256,
		Entries:     datatypes.JSON(entries),
	}
	if err := s.repo.Create(ctx, run); err != nil {
		log.WithError(err).Error("Failed to store backup run")
		return err
	}

	log.WithFields(logrus.Fields{
		"size":    run.SizeBytes,
		"entries": run.EntryCount,
	}).Info("Backup run recorded")
	return nil
}

func (s *historyService) GetRun(ctx context.Context, id string) (*BackupRun, error) {
	log := config.WithContext(ctx)

	runID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid backup run ID")
		return nil, ErrInvalidID
	}

	run, err := s.repo.GetByID(ctx, runID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch backup run")
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (s *historyService) ListRuns(ctx context.Context, limit int) ([]*BackupRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	runs, err := s.repo.List(ctx, limit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list backup runs")
		return nil, err
	}
	return runs, nil
}
