package models

type QuestionKind string

const (
	SingleChoice   QuestionKind = "single_choice"
	MultipleChoice QuestionKind = "multiple_choice"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// AnswerOption is a single display option within a question ("A", "B", ...).
// Options are immutable once loaded from a bank.
type AnswerOption struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// Question is one entry of an exam's question bank. CorrectAnswers must be a
// subset of the option ids; that invariant is enforced at load time by the
// validator, not re-checked on every read.
type Question struct {
	ID             string          `json:"id" validate:"required"`
	Topic          string          `json:"topic" validate:"required"`
	QuestionText   string          `json:"question_text" validate:"required"`
	Answers        []AnswerOption  `json:"answers" validate:"required,min=2,dive"`
	CorrectAnswers []string        `json:"correct_answers" validate:"required,min=1"`
	Kind           QuestionKind    `json:"question_type" validate:"required,question_kind"`
	Explanation    *string         `json:"explanation,omitempty"`
	Difficulty     DifficultyLevel `json:"difficulty,omitempty" validate:"omitempty,difficulty_level"`
}

// Clone returns an independent copy of the question. Sessions hold clones so
// that shuffling option order never touches the shared bank.
func (q Question) Clone() Question {
	c := q
	c.Answers = make([]AnswerOption, len(q.Answers))
	copy(c.Answers, q.Answers)
	c.CorrectAnswers = make([]string, len(q.CorrectAnswers))
	copy(c.CorrectAnswers, q.CorrectAnswers)
	if q.Explanation != nil {
		e := *q.Explanation
		c.Explanation = &e
	}
	return c
}

// OptionIDs returns the ids of all answer options in display order.
func (q Question) OptionIDs() []string {
	ids := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		ids[i] = a.ID
	}
	return ids
}
