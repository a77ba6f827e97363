// Command extract converts the question bank of a built backup into a
// Moodle XML import file and a JSON question map.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/extract"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	config.Init(config.LogLevel())

	source := config.Get("EXTRACT_SOURCE", backup.DefaultFilename)
	outDir := config.Get("EXTRACT_OUT_DIR", ".")

	data, err := course.Examen()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load course data")
	}

	ctx := context.Background()
	svc := extract.NewExtractContainer(data).Service

	res, err := svc.Extract(ctx, source)
	if err != nil {
		config.Logger.WithError(err).Fatal("Extraction failed")
	}
	if err := svc.WriteFiles(ctx, res, outDir); err != nil {
		config.Logger.WithError(err).Fatal("Writing extraction output failed")
	}

	fmt.Printf("Extracted %d questions\n", res.QuestionCount())
	fmt.Printf("Saved to: %s, %s\n", extract.QuizFilename, extract.MapFilename)
}
