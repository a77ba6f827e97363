package history

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
	"gorm.io/datatypes"
)

// BackupRun records one archive served by the API.
type BackupRun struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GeneratedAt util.Epoch     `gorm:"type:bigint;not null;index" json:"generated_at"`
	SizeBytes   int64          `gorm:"not null" json:"size_bytes"`
	EntryCount  int            `gorm:"not null" json:"entry_count"`
	SHA256      string         `gorm:"type:char(64);not null" json:"sha256"`
	Entries     datatypes.JSON `gorm:"type:jsonb;not null" json:"entries"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (BackupRun) TableName() string {
	return "backup_runs"
}
