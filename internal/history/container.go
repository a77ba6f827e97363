package history

import (
	"fmt"

	"gorm.io/gorm"
)

type HistoryContainer struct {
	Service HistoryService
	Handler *Handler
}

func NewHistoryContainer(db *gorm.DB) (*HistoryContainer, error) {
	if err := db.AutoMigrate(&BackupRun{}); err != nil {
		return nil, fmt.Errorf("migrate backup_runs: %w", err)
	}

	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &HistoryContainer{
		Service: service,
		Handler: handler,
	}, nil
}
