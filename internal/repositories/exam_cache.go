package repositories

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/certprep/exam-service/internal/cache"
	"github.com/certprep/exam-service/internal/models"
)

// CachedExamRepository wraps an ExamRepository with a short-TTL cache. Exam
// definitions are still effectively re-read per exam start; the TTL only
// absorbs request bursts, it does not pin the catalog in memory.
type CachedExamRepository struct {
	inner  ExamRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedExamRepository(inner ExamRepository, c cache.CacheService, ttl time.Duration, logger *slog.Logger) *CachedExamRepository {
	return &CachedExamRepository{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedExamRepository) LoadExamDefinitions(ctx context.Context) ([]models.ExamDefinition, error) {
	var exams []models.ExamDefinition
	err := r.cache.Get(ctx, "exams:catalog", &exams)
	if err == nil {
		return exams, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Exam catalog cache read failed", "error", err)
	}

	exams, err = r.inner.LoadExamDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr := r.cache.Set(ctx, "exams:catalog", exams, r.ttl); cacheErr != nil {
		r.logger.Warn("Exam catalog cache write failed", "error", cacheErr)
	}
	return exams, nil
}

func (r *CachedExamRepository) GetExamDefinition(ctx context.Context, examID string) (*models.ExamDefinition, error) {
	exams, err := r.LoadExamDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		if exams[i].ID == examID {
			return &exams[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *CachedExamRepository) LoadQuestionBank(ctx context.Context, examID string) ([]models.Question, error) {
	var questions []models.Question
	key := "exams:bank:" + examID
	err := r.cache.Get(ctx, key, &questions)
	if err == nil {
		return questions, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Question bank cache read failed", "exam_id", examID, "error", err)
	}

	questions, err = r.inner.LoadQuestionBank(ctx, examID)
	if err != nil {
		return nil, err
	}

	if cacheErr := r.cache.Set(ctx, key, questions, r.ttl); cacheErr != nil {
		r.logger.Warn("Question bank cache write failed", "exam_id", examID, "error", cacheErr)
	}
	return questions, nil
}
