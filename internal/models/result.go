package models

import "time"

// TopicPerformance is the per-topic breakdown within one scored session.
type TopicPerformance struct {
	Topic          string  `json:"topic"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Percentage     float64 `json:"percentage"`
	IsWeakArea     bool    `json:"is_weak_area"`
}

// QuestionDetail is the per-question row of a score result.
type QuestionDetail struct {
	QuestionID     string   `json:"question_id"`
	QuestionText   string   `json:"question_text"`
	Topic          string   `json:"topic"`
	UserAnswers    []string `json:"user_answers"`
	CorrectAnswers []string `json:"correct_answers"`
	IsCorrect      bool     `json:"is_correct"`
	Explanation    *string  `json:"explanation,omitempty"`
	Bookmarked     bool     `json:"bookmarked"`
}

// ScoreResult is the full outcome of scoring a session. TopicPerformance is
// sorted ascending by percentage; WeakAreas lists the topic names flagged
// weak in that same order.
type ScoreResult struct {
	SessionID        string             `json:"session_id"`
	ExamMode         SessionMode        `json:"exam_mode"`
	TotalQuestions   int                `json:"total_questions"`
	CorrectAnswers   int                `json:"correct_answers"`
	ScorePercentage  float64            `json:"score_percentage"`
	Passed           bool               `json:"passed"`
	TimeTakenMinutes int                `json:"time_taken_minutes"`
	CompletionDate   time.Time          `json:"completion_date"`
	TopicPerformance []TopicPerformance `json:"topic_performance"`
	WeakAreas        []string           `json:"weak_areas"`
	QuestionDetails  []QuestionDetail   `json:"question_details"`
}

// SessionProgress summarizes how far a candidate has worked through a session.
type SessionProgress struct {
	TotalQuestions       int     `json:"total_questions"`
	Answered             int     `json:"answered"`
	Unanswered           int     `json:"unanswered"`
	Bookmarked           int     `json:"bookmarked"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ReviewEntry pairs a question with the candidate's answer for review screens.
type ReviewEntry struct {
	QuestionNumber int         `json:"question_number"`
	Question       Question    `json:"question"`
	UserAnswer     *UserAnswer `json:"user_answer,omitempty"`
	IsCorrect      bool        `json:"is_correct"`
}
