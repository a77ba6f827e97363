package course

type QuestionType string

const (
	QuestionTypeMultichoice QuestionType = "multichoice"
	QuestionTypeTrueFalse   QuestionType = "truefalse"
	QuestionTypeShortAnswer QuestionType = "shortanswer"
)

// SingleAnswer reports whether exactly one answer may carry full credit.
func (t QuestionType) SingleAnswer() bool {
	return t == QuestionTypeMultichoice || t == QuestionTypeTrueFalse
}
