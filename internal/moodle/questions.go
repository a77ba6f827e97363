package moodle

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/saulo-duarte/examen-backup/internal/course"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

const (
	formatHTML = "html"
	formatAuto = "moodle_auto_format"

	// Id of the admin account that owns restored questions.
	ownerUserID = 2
)

// QuestionCategories is the root of questions.xml in a moodle2 backup.
type QuestionCategories struct {
	XMLName    xml.Name           `xml:"question_categories"`
	Categories []QuestionCategory `xml:"question_category"`
}

type QuestionCategory struct {
	ID                int        `xml:"id,attr"`
	Name              string     `xml:"name"`
	ContextID         int        `xml:"contextid"`
	ContextLevel      int        `xml:"contextlevel"`
	ContextInstanceID int        `xml:"contextinstanceid"`
	Info              string     `xml:"info"`
	InfoFormat        int        `xml:"infoformat"`
	Stamp             string     `xml:"stamp"`
	Parent            int        `xml:"parent"`
	SortOrder         int        `xml:"sortorder"`
	Questions         []Question `xml:"questions>question"`
}

type Question struct {
	ID              int           `xml:"id,attr"`
	Type            string        `xml:"type,attr"`
	Parent          int           `xml:"parent"`
	Name            Text          `xml:"name"`
	QuestionText    FormattedText `xml:"questiontext"`
	GeneralFeedback FormattedText `xml:"generalfeedback"`
	DefaultGrade    string        `xml:"defaultgrade"`
	Penalty         string        `xml:"penalty"`
	QType           string        `xml:"qtype"`
	Length          int           `xml:"length"`
	Stamp           string        `xml:"stamp"`
	Version         int           `xml:"version"`
	Hidden          int           `xml:"hidden"`
	TimeCreated     util.Epoch    `xml:"timecreated"`
	TimeModified    util.Epoch    `xml:"timemodified"`
	CreatedBy       int           `xml:"createdby"`
	ModifiedBy      int           `xml:"modifiedby"`

	Multichoice *MultichoicePlugin `xml:"plugin_qtype_multichoice_question,omitempty"`
	TrueFalse   *TrueFalsePlugin   `xml:"plugin_qtype_truefalse_question,omitempty"`
	ShortAnswer *ShortAnswerPlugin `xml:"plugin_qtype_shortanswer_question,omitempty"`
}

type Text struct {
	Text string `xml:"text"`
}

type FormattedText struct {
	Format string `xml:"format,attr,omitempty"`
	Text   string `xml:"text"`
}

type Answer struct {
	ID         int           `xml:"id,attr"`
	Fraction   int           `xml:"fraction,attr"`
	Format     string        `xml:"format,attr,omitempty"`
	AnswerText string        `xml:"answertext"`
	Feedback   FormattedText `xml:"feedback"`
}

type MultichoicePlugin struct {
	Answers                  []Answer      `xml:"answers>answer"`
	Single                   int           `xml:"single"`
	ShuffleAnswers           int           `xml:"shuffleanswers"`
	AnswerNumbering          string        `xml:"answernumbering"`
	CorrectFeedback          FormattedText `xml:"correctfeedback"`
	PartiallyCorrectFeedback FormattedText `xml:"partiallycorrectfeedback"`
	IncorrectFeedback        FormattedText `xml:"incorrectfeedback"`
	ShowNumCorrect           int           `xml:"shownumcorrect"`
}

type TrueFalsePlugin struct {
	Answers []Answer `xml:"answers>answer"`
}

type ShortAnswerPlugin struct {
	Answers []Answer `xml:"answers>answer"`
	UseCase int      `xml:"usecase"`
}

// Answers returns the answer list of whichever type plugin is present.
func (q Question) Answers() []Answer {
	switch {
	case q.Multichoice != nil:
		return q.Multichoice.Answers
	case q.TrueFalse != nil:
		return q.TrueFalse.Answers
	case q.ShortAnswer != nil:
		return q.ShortAnswer.Answers
	}
	return nil
}

// NewQuestionCategories maps the course question bank onto the backup
// layout. Every question is stamped with ts.
func NewQuestionCategories(d *course.Data, ts util.Epoch) QuestionCategories {
	bank := d.QuestionBank
	cat := QuestionCategory{
		ID:                bank.Category.ID,
		Name:              bank.Category.Name,
		ContextID:         d.Course.ContextID,
		ContextLevel:      bank.Category.ContextLevel,
		ContextInstanceID: d.Course.ID,
		Info:              bank.Category.Info,
		InfoFormat:        1,
		Stamp:             bank.Category.Stamp,
		SortOrder:         bank.Category.SortOrder,
	}

	prefix := slug(d.Course.ShortName)
	for _, q := range bank.Questions {
		cat.Questions = append(cat.Questions, newQuestion(q, prefix, ts))
	}

	return QuestionCategories{Categories: []QuestionCategory{cat}}
}

func newQuestion(q course.Question, stampPrefix string, ts util.Epoch) Question {
	out := Question{
		ID:              q.ID,
		Type:            string(q.Type),
		Name:            Text{Text: q.Name},
		QuestionText:    FormattedText{Format: formatHTML, Text: q.Text},
		GeneralFeedback: FormattedText{Format: formatHTML, Text: q.GeneralFeedback},
		DefaultGrade:    "1",
		Penalty:         "0.3333333",
		QType:           string(q.Type),
		Length:          1,
		Stamp:           fmt.Sprintf("%s.q%d.v1", stampPrefix, q.ID),
		Version:         1,
		TimeCreated:     ts,
		TimeModified:    ts,
		CreatedBy:       ownerUserID,
		ModifiedBy:      ownerUserID,
	}

	switch q.Type {
	case course.QuestionTypeMultichoice:
		out.Multichoice = &MultichoicePlugin{
			Answers:                  newAnswers(q.Answers, formatHTML),
			Single:                   1,
			ShuffleAnswers:           1,
			AnswerNumbering:          "abc",
			CorrectFeedback:          FormattedText{Format: formatHTML, Text: "Correct!"},
			PartiallyCorrectFeedback: FormattedText{Format: formatHTML, Text: "Partially correct."},
			IncorrectFeedback:        FormattedText{Format: formatHTML, Text: "Incorrect."},
			ShowNumCorrect:           1,
		}
	case course.QuestionTypeTrueFalse:
		out.Penalty = "1"
		out.TrueFalse = &TrueFalsePlugin{Answers: newAnswers(q.Answers, formatAuto)}
	case course.QuestionTypeShortAnswer:
		out.ShortAnswer = &ShortAnswerPlugin{Answers: newAnswers(q.Answers, formatAuto)}
	}
	return out
}

func newAnswers(in []course.Answer, format string) []Answer {
	out := make([]Answer, 0, len(in))
	for _, a := range in {
		out = append(out, Answer{
			ID:         a.ID,
			Fraction:   a.Fraction,
			Format:     format,
			AnswerText: a.Text,
			Feedback:   FormattedText{Format: formatHTML, Text: a.Feedback},
		})
	}
	return out
}

func renderQuestions(d *course.Data, ts util.Epoch) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(NewQuestionCategories(d, ts)); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRender, PathQuestions, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ParseQuestionCategories decodes a questions.xml document.
func ParseQuestionCategories(raw []byte) (*QuestionCategories, error) {
	var qc QuestionCategories
	if err := xml.Unmarshal(raw, &qc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", PathQuestions, err)
	}
	return &qc, nil
}
