package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zip"
	"github.com/saulo-duarte/examen-backup/internal/config"
	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/moodle"
)

const (
	QuizFilename = "examen_questions.xml"
	MapFilename  = "question_map.json"
)

var ErrQuestionsNotFound = errors.New("questions.xml not found in archive")

type Service interface {
	Extract(ctx context.Context, archivePath string) (*Result, error)
	WriteFiles(ctx context.Context, res *Result, dir string) error
}

type service struct {
	quizzes []course.Quiz
}

// NewService groups extracted questions into one import category per quiz.
func NewService(quizzes []course.Quiz) Service {
	return &service{quizzes: quizzes}
}

func (s *service) Extract(ctx context.Context, archivePath string) (*Result, error) {
	log := config.WithContext(ctx).WithField("archive", archivePath)

	raw, err := readQuestions(archivePath)
	if err != nil {
		log.WithError(err).Error("Failed to read question bank from archive")
		return nil, err
	}

	qc, err := moodle.ParseQuestionCategories(raw)
	if err != nil {
		log.WithError(err).Error("Failed to decode question bank")
		return nil, err
	}

	res := &Result{QuestionMap: make(map[string]MappedQuestion)}
	for _, cat := range qc.Categories {
		s.appendCategory(&res.Quiz, cat)
		for _, q := range cat.Questions {
			res.QuestionMap[strconv.Itoa(q.ID)] = mapQuestion(q)
		}
	}

	log.Infof("Extracted %d questions", res.QuestionCount())
	return res, nil
}

func (s *service) WriteFiles(ctx context.Context, res *Result, dir string) error {
	log := config.WithContext(ctx).WithField("dir", dir)

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(res.Quiz); err != nil {
		return fmt.Errorf("encode quiz xml: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(filepath.Join(dir, QuizFilename), buf.Bytes(), 0o644); err != nil {
		log.WithError(err).Error("Failed to write quiz file")
		return fmt.Errorf("write %s: %w", QuizFilename, err)
	}

	data, err := json.MarshalIndent(res.QuestionMap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode question map: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MapFilename), data, 0o644); err != nil {
		log.WithError(err).Error("Failed to write question map")
		return fmt.Errorf("write %s: %w", MapFilename, err)
	}

	log.Info("Extraction files written")
	return nil
}

func readQuestions(archivePath string) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != moodle.PathQuestions {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrQuestionsNotFound
}

// appendCategory emits the bank's questions, preceded by a category marker
// for each quiz that claims them. Questions outside every quiz go under
// the bank category itself.
func (s *service) appendCategory(quiz *Quiz, cat moodle.QuestionCategory) {
	byID := make(map[int]moodle.Question, len(cat.Questions))
	for _, q := range cat.Questions {
		byID[q.ID] = q
	}

	base := "$course$/top/" + cat.Name
	claimed := make(map[int]bool)

	var grouped []QuizQuestion
	for _, qz := range s.quizzes {
		var members []QuizQuestion
		for _, id := range qz.Questions {
			q, ok := byID[id]
			if !ok || claimed[id] {
				continue
			}
			claimed[id] = true
			members = append(members, quizQuestion(q))
		}
		if len(members) == 0 {
			continue
		}
		grouped = append(grouped, categoryMarker(base+"/"+qz.Name, qz.Intro))
		grouped = append(grouped, members...)
	}

	var loose []QuizQuestion
	for _, q := range cat.Questions {
		if !claimed[q.ID] {
			loose = append(loose, quizQuestion(q))
		}
	}
	if len(loose) > 0 {
		quiz.Questions = append(quiz.Questions, categoryMarker(base, cat.Info))
		quiz.Questions = append(quiz.Questions, loose...)
	}
	quiz.Questions = append(quiz.Questions, grouped...)
}

func categoryMarker(path, info string) QuizQuestion {
	return QuizQuestion{
		Type:     "category",
		Category: &Text{Text: path},
		Info:     &RichText{Format: "html", Text: CData{Value: info}},
	}
}

func quizQuestion(q moodle.Question) QuizQuestion {
	out := QuizQuestion{
		Type:            q.QType,
		Name:            &Text{Text: q.Name.Text},
		QuestionText:    &RichText{Format: "html", Text: CData{Value: q.QuestionText.Text}},
		GeneralFeedback: &RichText{Format: "html", Text: CData{Value: q.GeneralFeedback.Text}},
		DefaultGrade:    "1.0000000",
		Penalty:         "0.3333333",
		Hidden:          "0",
	}

	switch {
	case q.Multichoice != nil:
		out.Single = boolText(q.Multichoice.Single)
		out.ShuffleAnswers = boolText(q.Multichoice.ShuffleAnswers)
		out.AnswerNumbering = q.Multichoice.AnswerNumbering
	case q.TrueFalse != nil:
		out.Penalty = "1.0000000"
	case q.ShortAnswer != nil:
		out.UseCase = strconv.Itoa(q.ShortAnswer.UseCase)
	}

	for _, a := range q.Answers() {
		format := a.Format
		if format == "" {
			format = "html"
		}
		out.Answers = append(out.Answers, QuizAnswer{
			Fraction: a.Fraction,
			Format:   format,
			Text:     CData{Value: a.AnswerText},
			Feedback: RichText{Format: "html", Text: CData{Value: a.Feedback.Text}},
		})
	}
	return out
}

func mapQuestion(q moodle.Question) MappedQuestion {
	m := MappedQuestion{
		Name:    q.Name.Text,
		Text:    q.QuestionText.Text,
		Type:    q.QType,
		Answers: []MappedAnswer{},
	}
	for _, a := range q.Answers() {
		m.Answers = append(m.Answers, MappedAnswer{
			Text:     a.AnswerText,
			Fraction: float64(a.Fraction) / course.FullCredit,
		})
	}
	return m
}

func boolText(v int) string {
	if v != 0 {
		return "true"
	}
	return "false"
}
