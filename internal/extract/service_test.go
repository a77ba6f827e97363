package extract_test

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/examen-backup/internal/backup"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/extract"
)

func buildArchive(t *testing.T) (string, *course.Data) {
	t.Helper()
	d, err := course.Examen()
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	path := filepath.Join(t.TempDir(), backup.DefaultFilename)
	b := backup.NewBuilder(d, backup.WithClock(func() time.Time {
		return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	}))
	if _, err := b.Build(context.Background(), path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return path, d
}

func TestExtract(t *testing.T) {
	path, d := buildArchive(t)
	svc := extract.NewService(d.Quizzes)

	res, err := svc.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if res.QuestionCount() != 5 {
		t.Fatalf("expected 5 mapped questions, got %d", res.QuestionCount())
	}
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		if _, ok := res.QuestionMap[key]; !ok {
			t.Errorf("question map missing key %s", key)
		}
	}

	q4 := res.QuestionMap["4"]
	if q4.Type != "shortanswer" || len(q4.Answers) != 3 {
		t.Errorf("unexpected mapping for question 4: %+v", q4)
	}
	if q4.Answers[0].Fraction != 1 {
		t.Errorf("map fractions should use the 0-1 scale, got %v", q4.Answers[0].Fraction)
	}

	var categories, questions []extract.QuizQuestion
	for _, q := range res.Quiz.Questions {
		if q.Type == "category" {
			categories = append(categories, q)
		} else {
			questions = append(questions, q)
		}
	}
	if len(questions) != 5 {
		t.Errorf("expected 5 quiz questions, got %d", len(questions))
	}
	if len(categories) != len(d.Quizzes) {
		t.Fatalf("expected %d category markers, got %d", len(d.Quizzes), len(categories))
	}
	want := "$course$/top/Daily Examen Questions/" + d.Quizzes[0].Name
	if categories[0].Category.Text != want {
		t.Errorf("category path %q, want %q", categories[0].Category.Text, want)
	}

	first := questions[0]
	if first.Type != "multichoice" || first.Single != "true" || first.AnswerNumbering != "abc" {
		t.Errorf("multichoice settings not carried over: %+v", first)
	}
	if first.DefaultGrade != "1.0000000" || first.Hidden != "0" {
		t.Errorf("unexpected grading fields: %+v", first)
	}
}

func TestExtractWithoutQuizzes(t *testing.T) {
	path, _ := buildArchive(t)

	res, err := extract.NewService(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(res.Quiz.Questions) != 6 {
		t.Fatalf("expected one category marker plus 5 questions, got %d", len(res.Quiz.Questions))
	}
	if res.Quiz.Questions[0].Category.Text != "$course$/top/Daily Examen Questions" {
		t.Errorf("unexpected base category %q", res.Quiz.Questions[0].Category.Text)
	}
}

func TestWriteFiles(t *testing.T) {
	path, d := buildArchive(t)
	svc := extract.NewService(d.Quizzes)

	res, err := svc.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	out := t.TempDir()
	if err := svc.WriteFiles(context.Background(), res, out); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	quizXML, err := os.ReadFile(filepath.Join(out, extract.QuizFilename))
	if err != nil {
		t.Fatalf("quiz file missing: %v", err)
	}
	if !strings.Contains(string(quizXML), "<![CDATA[What is the PRIMARY purpose") {
		t.Error("question text should be wrapped in CDATA")
	}
	if !strings.HasPrefix(string(quizXML), "<?xml") {
		t.Error("quiz file missing XML declaration")
	}

	raw, err := os.ReadFile(filepath.Join(out, extract.MapFilename))
	if err != nil {
		t.Fatalf("map file missing: %v", err)
	}
	var m map[string]extract.MappedQuestion
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("invalid question map: %v", err)
	}
	if m["1"].Name != "Purpose of the Examen" {
		t.Errorf("unexpected name for question 1: %q", m["1"].Name)
	}
}

func TestExtractMissingQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mbz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("moodle_backup.xml")
	w.Write([]byte("<moodle_backup/>"))
	zw.Close()
	f.Close()

	_, err = extract.NewService(nil).Extract(context.Background(), path)
	if !errors.Is(err, extract.ErrQuestionsNotFound) {
		t.Fatalf("expected ErrQuestionsNotFound, got %v", err)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	_, err := extract.NewService(nil).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.mbz"))
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
}
