package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/moodle"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
	"github.com/sirupsen/logrus"
)

var ErrWrite = errors.New("write backup archive")

type Builder interface {
	// Build writes the archive to outputPath. The file appears only once
	// the archive is complete.
	Build(ctx context.Context, outputPath string) (*BuildResult, error)
	// Write streams the archive to w.
	Write(ctx context.Context, w io.Writer) (*BuildResult, error)
}

type Option func(*builder)

// WithClock overrides the source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(b *builder) {
		b.now = now
	}
}

// WithProgress registers a callback invoked after each entry is written.
func WithProgress(fn func(Entry)) Option {
	return func(b *builder) {
		b.progress = fn
	}
}

type builder struct {
	data     *course.Data
	now      func() time.Time
	progress func(Entry)
}

func NewBuilder(data *course.Data, opts ...Option) Builder {
	b := &builder{
		data: data,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *builder) Build(ctx context.Context, outputPath string) (*BuildResult, error) {
	ctx, ts := b.begin(ctx)
	log := config.WithContext(ctx).WithField("path", outputPath)

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		log.WithError(err).Error("Failed to create backup file")
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
	}

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	res, err := b.write(ctx, tmp, ts)
	if err != nil {
		return nil, err
	}

	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		log.WithError(err).Error("Failed to move backup into place")
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
	}
	committed = true

	res.Path = outputPath
	log.WithFields(logrus.Fields{
		"size":    res.Size,
		"entries": res.EntryCount(),
	}).Info("Backup archive written")
	return res, nil
}

func (b *builder) Write(ctx context.Context, w io.Writer) (*BuildResult, error) {
	ctx, ts := b.begin(ctx)
	return b.write(ctx, w, ts)
}

// begin captures the single timestamp of a run and tags ctx with a run id.
func (b *builder) begin(ctx context.Context) (context.Context, util.Epoch) {
	return config.WithRunID(ctx, uuid.New()), util.NewEpoch(b.now())
}

func (b *builder) write(ctx context.Context, w io.Writer, ts util.Epoch) (*BuildResult, error) {
	log := config.WithContext(ctx)
	runID, _ := config.RunIDFromContext(ctx)

	docs, err := moodle.Render(b.data, ts)
	if err != nil {
		log.WithError(err).Error("Failed to render backup documents")
		return nil, err
	}

	hash := sha256.New()
	counter := &countingWriter{}
	zw := newZipWriter(io.MultiWriter(w, hash, counter))

	closed := false
	defer func() {
		if !closed {
			zw.Close()
		}
	}()

	res := &BuildResult{
		RunID:     runID,
		Timestamp: ts,
		Entries:   make([]Entry, 0, len(docs)),
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     doc.Path,
			Method:   zip.Deflate,
			Modified: ts.Time,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %w", ErrWrite, doc.Path, err)
		}
		if _, err := fw.Write(doc.Body); err != nil {
			return nil, fmt.Errorf("%w: entry %s: %w", ErrWrite, doc.Path, err)
		}

		entry := Entry{Path: doc.Path, Size: int64(len(doc.Body))}
		res.Entries = append(res.Entries, entry)
		log.WithField("entry", doc.Path).Debug("Entry written")
		if b.progress != nil {
			b.progress(entry)
		}
	}

	closed = true
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalize archive: %w", ErrWrite, err)
	}

	res.Size = counter.n
	res.SHA256 = hex.EncodeToString(hash.Sum(nil))
	return res, nil
}
