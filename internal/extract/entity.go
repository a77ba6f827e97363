package extract

import "encoding/xml"

// Quiz is the root of a Moodle XML question import file.
type Quiz struct {
	XMLName   xml.Name       `xml:"quiz"`
	Questions []QuizQuestion `xml:"question"`
}

// QuizQuestion is either a category marker (Type "category") or a question.
type QuizQuestion struct {
	Type string `xml:"type,attr"`

	Category *Text     `xml:"category,omitempty"`
	Info     *RichText `xml:"info,omitempty"`

	Name            *Text     `xml:"name,omitempty"`
	QuestionText    *RichText `xml:"questiontext,omitempty"`
	GeneralFeedback *RichText `xml:"generalfeedback,omitempty"`
	DefaultGrade    string    `xml:"defaultgrade,omitempty"`
	Penalty         string    `xml:"penalty,omitempty"`
	Hidden          string    `xml:"hidden,omitempty"`

	Single          string `xml:"single,omitempty"`
	ShuffleAnswers  string `xml:"shuffleanswers,omitempty"`
	AnswerNumbering string `xml:"answernumbering,omitempty"`
	UseCase         string `xml:"usecase,omitempty"`

	Answers []QuizAnswer `xml:"answer"`
}

type Text struct {
	Text string `xml:"text"`
}

type RichText struct {
	Format string `xml:"format,attr,omitempty"`
	Text   CData  `xml:"text"`
}

type CData struct {
	Value string `xml:",cdata"`
}

type QuizAnswer struct {
	Fraction int      `xml:"fraction,attr"`
	Format   string   `xml:"format,attr,omitempty"`
	Text     CData    `xml:"text"`
	Feedback RichText `xml:"feedback"`
}

// MappedQuestion is one value of question_map.json. Fractions use
// Moodle's 0-1 database scale.
type MappedQuestion struct {
	Name    string         `json:"name"`
	Text    string         `json:"text"`
	Type    string         `json:"type"`
	Answers []MappedAnswer `json:"answers"`
}

type MappedAnswer struct {
	Text     string  `json:"text"`
	Fraction float64 `json:"fraction"`
}

type Result struct {
	Quiz        Quiz
	QuestionMap map[string]MappedQuestion
}

func (r *Result) QuestionCount() int {
	return len(r.QuestionMap)
}
