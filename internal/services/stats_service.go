package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/repositories"
)

type statsService struct {
	examRepo repositories.ExamRepository
	logger   *slog.Logger
}

func NewStatsService(examRepo repositories.ExamRepository, logger *slog.Logger) StatsService {
	return &statsService{
		examRepo: examRepo,
		logger:   logger,
	}
}

// ExamStats summarizes one exam's bank by topic and difficulty. Questions
// without an explicit difficulty count as medium.
func (s *statsService) ExamStats(ctx context.Context, examID string) (*models.BankStats, error) {
	questions, err := s.examRepo.LoadQuestionBank(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to load question bank for %s: %w", examID, err)
	}

	stats := &models.BankStats{
		ExamID:         examID,
		TotalQuestions: len(questions),
		ByTopic:        make(map[string]int),
		ByDifficulty: map[string]int{
			string(models.DifficultyEasy):   0,
			string(models.DifficultyMedium): 0,
			string(models.DifficultyHard):   0,
		},
	}

	for _, q := range questions {
		stats.ByTopic[q.Topic]++

		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = models.DifficultyMedium
		}
		stats.ByDifficulty[string(difficulty)]++
	}

	return stats, nil
}

// CatalogStats rolls ExamStats up across every exam in the catalog.
func (s *statsService) CatalogStats(ctx context.Context) (*models.CatalogStats, error) {
	exams, err := s.examRepo.LoadExamDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam definitions: %w", err)
	}

	catalog := &models.CatalogStats{
		ByExam:     make(map[string]*models.BankStats, len(exams)),
		TotalExams: len(exams),
	}

	for _, exam := range exams {
		stats, err := s.ExamStats(ctx, exam.ID)
		if err != nil {
			s.logger.Warn("Skipping exam in catalog stats", "exam_id", exam.ID, "error", err)
			continue
		}
		catalog.ByExam[exam.ID] = stats
	}

	return catalog, nil
}
