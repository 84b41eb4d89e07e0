package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/repositories"
)

// examCatalog mirrors the on-disk exams file: {"exams": [...]}.
type examCatalog struct {
	Exams []models.ExamDefinition `json:"exams"`
}

// questionBank mirrors a per-exam questions file: {"questions": [...]}.
type questionBank struct {
	Questions []models.Question `json:"questions"`
}

// ExamRepository reads exam definitions and question banks from JSON files.
// Files are re-read on every call so that edits to the catalog show up on the
// next session start without a restart.
type ExamRepository struct {
	examsFile string
	logger    *slog.Logger
}

func NewExamRepository(examsFile string, logger *slog.Logger) *ExamRepository {
	return &ExamRepository{
		examsFile: examsFile,
		logger:    logger,
	}
}

func (r *ExamRepository) LoadExamDefinitions(ctx context.Context) ([]models.ExamDefinition, error) {
	data, err := os.ReadFile(r.examsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read exams file %s: %w", r.examsFile, err)
	}

	var catalog examCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse exams file %s: %w", r.examsFile, err)
	}

	r.logger.Debug("Loaded exam definitions", "file", r.examsFile, "count", len(catalog.Exams))
	return catalog.Exams, nil
}

func (r *ExamRepository) GetExamDefinition(ctx context.Context, examID string) (*models.ExamDefinition, error) {
	exams, err := r.LoadExamDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	for i := range exams {
		if exams[i].ID == examID {
			return &exams[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ExamRepository) LoadQuestionBank(ctx context.Context, examID string) ([]models.Question, error) {
	exam, err := r.GetExamDefinition(ctx, examID)
	if err != nil {
		return nil, err
	}

	// Question files are resolved relative to the catalog unless absolute.
	path := exam.QuestionsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(r.examsFile), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Question bank file missing", "exam_id", examID, "file", path)
			return []models.Question{}, nil
		}
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}

	var bank questionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}

	r.logger.Debug("Loaded question bank", "exam_id", examID, "count", len(bank.Questions))
	return bank.Questions, nil
}
