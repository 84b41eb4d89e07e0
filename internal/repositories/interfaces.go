package repositories

import (
	"context"
	"errors"

	"github.com/certprep/exam-service/internal/models"
)

// ErrNotFound is returned by repositories when the requested entity does not
// exist. Services translate it into their own sentinel errors.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError checks if error represents a "not found" condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ExamRepository resolves exam definitions and their question banks. The core
// never touches files or tables directly; this is the boundary it loads
// through at session start.
type ExamRepository interface {
	LoadExamDefinitions(ctx context.Context) ([]models.ExamDefinition, error)
	GetExamDefinition(ctx context.Context, examID string) (*models.ExamDefinition, error)

	// LoadQuestionBank returns the full question set for an exam. A missing
	// or empty bank yields an empty slice, not an error.
	LoadQuestionBank(ctx context.Context, examID string) ([]models.Question, error)
}

// ResultRepository persists score results. Persistence is best-effort from
// the scorer's point of view; a failed save is logged and never propagated to
// the caller of Score.
type ResultRepository interface {
	Save(ctx context.Context, result *models.ScoreResult) error
}
