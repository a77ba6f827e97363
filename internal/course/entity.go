package course

// FullCredit is the fraction awarded for a fully correct answer.
const FullCredit = 100

type Data struct {
	Site         Site         `yaml:"site" validate:"required"`
	Course       Course       `yaml:"course" validate:"required"`
	QuestionBank QuestionBank `yaml:"question_bank" validate:"required"`
	Quizzes      []Quiz       `yaml:"quizzes" validate:"dive"`
}

// Site identifies the Moodle installation the backup claims to come from.
type Site struct {
	WWWRoot         string `yaml:"wwwroot" validate:"required,url"`
	IdentifierHash  string `yaml:"identifier_hash" validate:"required"`
	SystemContextID int    `yaml:"system_context_id" validate:"gt=0"`
	Version         int64  `yaml:"version" validate:"gt=0"`
	Release         string `yaml:"release" validate:"required"`
}

type Course struct {
	ID          int            `yaml:"id" validate:"gt=0"`
	ContextID   int            `yaml:"context_id" validate:"gt=0"`
	ShortName   string         `yaml:"shortname" validate:"required,max=255"`
	FullName    string         `yaml:"fullname" validate:"required,max=254"`
	Format      string         `yaml:"format" validate:"required"`
	NumSections int            `yaml:"num_sections" validate:"gt=0"`
	Summary     string         `yaml:"summary"`
	Category    CourseCategory `yaml:"category" validate:"required"`
}

type CourseCategory struct {
	ID        int    `yaml:"id" validate:"gt=0"`
	ContextID int    `yaml:"context_id" validate:"gt=0"`
	Name      string `yaml:"name" validate:"required"`
}

type QuestionBank struct {
	Category  BankCategory `yaml:"category" validate:"required"`
	Questions []Question   `yaml:"questions" validate:"required,min=1,dive"`
}

type BankCategory struct {
	ID           int    `yaml:"id" validate:"gt=0"`
	Name         string `yaml:"name" validate:"required"`
	ContextLevel int    `yaml:"context_level" validate:"gt=0"`
	Info         string `yaml:"info"`
	Stamp        string `yaml:"stamp" validate:"required"`
	SortOrder    int    `yaml:"sort_order"`
}

type Question struct {
	ID              int          `yaml:"id" json:"id" validate:"gt=0"`
	Type            QuestionType `yaml:"type" json:"type" validate:"required,oneof=multichoice truefalse shortanswer"`
	Name            string       `yaml:"name" json:"name" validate:"required"`
	Text            string       `yaml:"text" json:"text" validate:"required"`
	GeneralFeedback string       `yaml:"general_feedback" json:"general_feedback,omitempty"`
	Answers         []Answer     `yaml:"answers" json:"answers" validate:"required,min=1,dive"`
}

type Answer struct {
	ID       int    `yaml:"id" json:"id" validate:"gt=0"`
	Text     string `yaml:"text" json:"text" validate:"required"`
	Fraction int    `yaml:"fraction" json:"fraction" validate:"min=0,max=100"`
	Feedback string `yaml:"feedback" json:"feedback,omitempty"`
}

// Quiz groups bank questions for one course section.
type Quiz struct {
	Name      string `yaml:"name" validate:"required"`
	Intro     string `yaml:"intro"`
	Section   int    `yaml:"section" validate:"gt=0"`
	Questions []int  `yaml:"questions" validate:"required,min=1"`
}

func (q Question) CorrectAnswers() []Answer {
	var out []Answer
	for _, a := range q.Answers {
		if a.Fraction == FullCredit {
			out = append(out, a)
		}
	}
	return out
}

func (b QuestionBank) Find(id int) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
