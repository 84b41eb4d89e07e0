package services

import (
	"context"
	"io"

	"github.com/certprep/exam-service/internal/models"
)

// ===== REQUEST STRUCTS =====

type StartSessionRequest struct {
	ExamID        string             `json:"exam_id" validate:"required"`
	Mode          models.SessionMode `json:"mode" validate:"omitempty,session_mode"`
	Topics        []string           `json:"topics,omitempty"`
	QuestionCount *int               `json:"question_count,omitempty" validate:"omitempty,min=1"`
}

type SubmitAnswerRequest struct {
	QuestionID      string   `json:"question_id" validate:"required"`
	SelectedAnswers []string `json:"selected_answers"`
	Bookmarked      bool     `json:"bookmarked"`
}

// ===== SERVICE INTERFACES =====

// SessionService owns the in-memory exam sessions: creation with sampling
// and shuffling, navigation, answer recording, and timing.
//
// Mutations (SubmitAnswer, NavigateTo) report success as a bool so callers
// can tell "nothing happened" from a fault; read lookups return nil for
// missing entities.
type SessionService interface {
	Create(ctx context.Context, req *StartSessionRequest) (*models.Session, error)
	Get(sessionID string) (*models.Session, error)

	SubmitAnswer(sessionID string, req *SubmitAnswerRequest) bool
	NavigateTo(sessionID string, index int) bool

	CurrentQuestion(sessionID string) *models.Question
	UserAnswer(sessionID, questionID string) *models.UserAnswer

	// IsExpired is advisory: expired sessions are not terminated here, the
	// boundary layer decides whether to block answers or force-submit.
	IsExpired(sessionID string) bool

	// RemainingSeconds returns nil for untimed or unknown sessions.
	RemainingSeconds(sessionID string) *int

	Progress(sessionID string) (*models.SessionProgress, error)
	Review(sessionID string) ([]models.ReviewEntry, error)
}

// ScoringService grades a session and produces the full result breakdown.
// Scoring never mutates session state; persisting the result is best-effort.
type ScoringService interface {
	Score(ctx context.Context, sessionID string) (*models.ScoreResult, error)
}

// StatsService reports question bank composition per exam and catalog-wide.
type StatsService interface {
	ExamStats(ctx context.Context, examID string) (*models.BankStats, error)
	CatalogStats(ctx context.Context) (*models.CatalogStats, error)
}

// ImportExportService brings question banks in from spreadsheet files and
// exports score results.
type ImportExportService interface {
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) ([]models.Question, *models.ImportSummary, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) ([]models.Question, *models.ImportSummary, error)
	ExportResultToExcel(ctx context.Context, result *models.ScoreResult) ([]byte, error)
}
