package models

import "time"

type SessionMode string

const (
	ModeExam  SessionMode = "exam"
	ModeStudy SessionMode = "study"
)

// UserAnswer records the candidate's current selection for one question.
// A session holds at most one UserAnswer per question id; resubmitting
// replaces the previous record.
type UserAnswer struct {
	QuestionID       string   `json:"question_id" validate:"required"`
	SelectedAnswers  []string `json:"selected_answers"`
	TimeSpentSeconds *int     `json:"time_spent_seconds,omitempty"`
	Bookmarked       bool     `json:"bookmarked"`
}

// Session is one candidate's attempt at an exam. Questions is a snapshot
// taken at creation time; later changes to the bank never reach an in-flight
// session. DurationMinutes is nil for untimed (study) sessions.
type Session struct {
	SessionID            string       `json:"session_id"`
	Mode                 SessionMode  `json:"mode"`
	Questions            []Question   `json:"questions"`
	StartTime            time.Time    `json:"start_time"`
	DurationMinutes      *int         `json:"duration_minutes,omitempty"`
	CurrentQuestionIndex int          `json:"current_question_index"`
	UserAnswers          []UserAnswer `json:"user_answers"`
}

// QuestionCount returns the number of questions in the session snapshot.
func (s *Session) QuestionCount() int {
	return len(s.Questions)
}

// AnswerFor returns the recorded answer for a question id, or nil.
func (s *Session) AnswerFor(questionID string) *UserAnswer {
	for i := range s.UserAnswers {
		if s.UserAnswers[i].QuestionID == questionID {
			return &s.UserAnswers[i]
		}
	}
	return nil
}

// CurrentQuestion returns the question at the navigation cursor, or nil when
// the session holds no questions.
func (s *Session) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}
