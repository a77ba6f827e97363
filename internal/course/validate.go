package course

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCourse       = errors.New("invalid course data")
	ErrDuplicateQuestionID = errors.New("duplicate question id")
	ErrDuplicateAnswerID   = errors.New("duplicate answer id")
	ErrCorrectAnswerCount  = errors.New("wrong number of fully correct answers")
	ErrUnknownQuestion     = errors.New("quiz references unknown question")
	ErrSectionOutOfRange   = errors.New("quiz section out of range")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and the cross-record rules the
// backup format depends on: unique ids, credit distribution and quiz
// references.
func Validate(d *Data) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, err)
	}

	questionIDs := make(map[int]struct{}, len(d.QuestionBank.Questions))
	answerIDs := make(map[int]struct{})

	for _, q := range d.QuestionBank.Questions {
		if _, dup := questionIDs[q.ID]; dup {
			return fmt.Errorf("%w: %w: %d", ErrInvalidCourse, ErrDuplicateQuestionID, q.ID)
		}
		questionIDs[q.ID] = struct{}{}

		for _, a := range q.Answers {
			if _, dup := answerIDs[a.ID]; dup {
				return fmt.Errorf("%w: %w: %d", ErrInvalidCourse, ErrDuplicateAnswerID, a.ID)
			}
			answerIDs[a.ID] = struct{}{}
		}

		if err := checkCredit(q); err != nil {
			return fmt.Errorf("%w: question %d: %w", ErrInvalidCourse, q.ID, err)
		}
	}

	for _, quiz := range d.Quizzes {
		if quiz.Section > d.Course.NumSections {
			return fmt.Errorf("%w: %w: %q section %d of %d",
				ErrInvalidCourse, ErrSectionOutOfRange, quiz.Name, quiz.Section, d.Course.NumSections)
		}
		for _, id := range quiz.Questions {
			if _, ok := questionIDs[id]; !ok {
				return fmt.Errorf("%w: %w: %q -> %d", ErrInvalidCourse, ErrUnknownQuestion, quiz.Name, id)
			}
		}
	}

	return nil
}

func checkCredit(q Question) error {
	correct := len(q.CorrectAnswers())

	switch {
	case q.Type.SingleAnswer() && correct != 1:
		return fmt.Errorf("%w: %s has %d", ErrCorrectAnswerCount, q.Type, correct)
	case q.Type == QuestionTypeShortAnswer && correct == 0:
		return fmt.Errorf("%w: %s has none", ErrCorrectAnswerCount, q.Type)
	case q.Type == QuestionTypeTrueFalse && len(q.Answers) != 2:
		return fmt.Errorf("truefalse needs 2 answers, has %d", len(q.Answers))
	}
	return nil
}
