// Command examen writes ignatian_examen_backup.mbz, a Moodle course
// backup of the Ignatian Daily Examen course, into the working directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/sirupsen/logrus"
)

func main() {
	config.Init(logrus.WarnLevel)

	if err := run(context.Background(), os.Stdout); err != nil {
		config.Logger.WithError(err).Error("Backup generation failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	data, err := course.Examen()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "🕊️  Generating Ignatian Daily Examen Moodle Backup...")
	fmt.Fprintf(out, "📦 Creating %s...\n\n", backup.DefaultFilename)

	builder := backup.NewBuilder(data, backup.WithProgress(func(e backup.Entry) {
		fmt.Fprintf(out, "  ✓ %s\n", e.Path)
	}))

	res, err := builder.Build(ctx, backup.DefaultFilename)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✅ Success! Created %s\n", res.Path)
	fmt.Fprintf(out, "📊 File size: %.1f KB (%d entries)\n", float64(res.Size)/1024, res.EntryCount())
	fmt.Fprintln(out, "\n📋 Import Instructions:")
	fmt.Fprintln(out, "  1. Log into your Moodle site as administrator")
	fmt.Fprintln(out, "  2. Go to: Site Administration → Courses → Restore course")
	fmt.Fprintln(out, "  3. Upload this .mbz file")
	fmt.Fprintln(out, "  4. Follow the restore wizard")
	fmt.Fprintln(out, "\n🎯 The course includes:")
	fmt.Fprintf(out, "  • %d carefully crafted questions\n", len(data.QuestionBank.Questions))
	fmt.Fprintf(out, "  • %d course sections\n", data.Course.NumSections)
	fmt.Fprintln(out, "  • Rich educational feedback")
	return nil
}
