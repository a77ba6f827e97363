package history

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BackupRunRepository interface {
	Create(ctx context.Context, run *BackupRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*BackupRun, error)
	List(ctx context.Context, limit int) ([]*BackupRun, error)
}

type backupRunRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) BackupRunRepository {
	return &backupRunRepository{db: db}
}

func (r *backupRunRepository) Create(ctx context.Context, run *BackupRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *backupRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*BackupRun, error) {
	var run BackupRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *backupRunRepository) List(ctx context.Context, limit int) ([]*BackupRun, error) {
	var runs []*BackupRun
	if err := r.db.WithContext(ctx).
		Order("generated_at DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
