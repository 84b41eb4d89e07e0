package events

import (
	"time"

	"github.com/certprep/exam-service/internal/models"
)

// EventType represents different types of exam lifecycle events.
type EventType string

const (
	EventSessionStarted EventType = "session.started"
	EventSessionScored  EventType = "session.scored"
)

// ExamEvent is the envelope for all exam lifecycle events.
type ExamEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SessionStartedEvent is published when a candidate starts a session.
type SessionStartedEvent struct {
	SessionID       string             `json:"session_id"`
	ExamID          string             `json:"exam_id"`
	Mode            models.SessionMode `json:"mode"`
	QuestionCount   int                `json:"question_count"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	StartedAt       time.Time          `json:"started_at"`
}

// SessionScoredEvent is published after a session has been scored.
type SessionScoredEvent struct {
	SessionID       string             `json:"session_id"`
	Mode            models.SessionMode `json:"mode"`
	TotalQuestions  int                `json:"total_questions"`
	CorrectAnswers  int                `json:"correct_answers"`
	ScorePercentage float64            `json:"score_percentage"`
	Passed          bool               `json:"passed"`
	WeakAreas       []string           `json:"weak_areas"`
	CompletedAt     time.Time          `json:"completed_at"`
}
