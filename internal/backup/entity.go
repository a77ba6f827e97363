package backup

import (
	"github.com/google/uuid"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

const (
	DefaultFilename = "ignatian_examen_backup.mbz"
	ContentType     = "application/vnd.moodle.backup"
)

// Entry describes one written archive member; Size is uncompressed.
type Entry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type BuildResult struct {
	RunID     uuid.UUID  `json:"run_id"`
	Path      string     `json:"path,omitempty"`
	Size      int64      `json:"size"`
	SHA256    string     `json:"sha256"`
	Timestamp util.Epoch `json:"timestamp"`
	Entries   []Entry    `json:"entries"`
}

func (r *BuildResult) EntryCount() int {
	return len(r.Entries)
}

func (r *BuildResult) EntryPaths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}
