package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/history"
	"github.com/saulo-duarte/examen-backup/internal/router"
)

type Container struct {
	BackupContainer  *backup.BackupContainer
	HistoryContainer *history.HistoryContainer
}

// New wires the API. History is enabled only when DATABASE_DSN is set.
func New(ctx context.Context) (*Container, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	config.Init(config.LogLevel())

	data, err := course.Examen()
	if err != nil {
		return nil, err
	}

	c := &Container{}
	var recorder backup.Recorder

	if dsn := config.Get("DATABASE_DSN", ""); dsn != "" {
		if err := config.Connect(ctx, dsn); err != nil {
			return nil, err
		}
		hc, err := history.NewHistoryContainer(config.DB)
		if err != nil {
			return nil, err
		}
		c.HistoryContainer = hc
		recorder = hc.Service
	} else {
		config.WithContext(ctx).Warn("DATABASE_DSN not set, backup history disabled")
	}

	c.BackupContainer = backup.NewBackupContainer(data, recorder)
	return c, nil
}

func (c *Container) RouterConfig() router.RouterConfig {
	cfg := router.RouterConfig{
		BackupHandler: c.BackupContainer.Handler,
	}
	if c.HistoryContainer != nil {
		cfg.HistoryHandler = c.HistoryContainer.Handler
	}
	return cfg
}
