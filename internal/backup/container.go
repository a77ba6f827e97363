package backup

import "github.com/saulo-duarte/examen-backup/internal/course"

type BackupContainer struct {
	Builder Builder
	Handler *Handler
}

func NewBackupContainer(data *course.Data, recorder Recorder) *BackupContainer {
	builder := NewBuilder(data)
	handler := NewHandler(builder, data, recorder)

	return &BackupContainer{
		Builder: builder,
		Handler: handler,
	}
}
