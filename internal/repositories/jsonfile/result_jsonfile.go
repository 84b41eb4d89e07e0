package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/certprep/exam-service/internal/models"
)

// ResultRepository writes one JSON file per scored session for historical
// tracking.
type ResultRepository struct {
	resultsDir string
	logger     *slog.Logger
}

func NewResultRepository(resultsDir string, logger *slog.Logger) *ResultRepository {
	return &ResultRepository{
		resultsDir: resultsDir,
		logger:     logger,
	}
}

func (r *ResultRepository) Save(ctx context.Context, result *models.ScoreResult) error {
	if err := os.MkdirAll(r.resultsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create results dir %s: %w", r.resultsDir, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	path := filepath.Join(r.resultsDir, fmt.Sprintf("result_%s.json", result.SessionID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", path, err)
	}

	r.logger.Info("Saved score result", "session_id", result.SessionID, "file", path)
	return nil
}
