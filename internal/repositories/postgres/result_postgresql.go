package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/certprep/exam-service/internal/models"
)

// ScoreResultRecord is the persisted form of a ScoreResult. The breakdown
// lists are stored as jsonb rather than normalized tables; results are
// write-once and read back whole.
type ScoreResultRecord struct {
	ID               uint           `gorm:"primaryKey"`
	SessionID        string         `gorm:"not null;uniqueIndex;size:36"`
	ExamMode         string         `gorm:"not null;size:10"`
	TotalQuestions   int            `gorm:"not null"`
	CorrectAnswers   int            `gorm:"not null"`
	ScorePercentage  float64        `gorm:"not null"`
	Passed           bool           `gorm:"not null;index"`
	TimeTakenMinutes int            `gorm:"not null"`
	CompletionDate   time.Time      `gorm:"not null;index"`
	TopicPerformance datatypes.JSON `gorm:"type:jsonb"`
	WeakAreas        datatypes.JSON `gorm:"type:jsonb"`
	QuestionDetails  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time
}

func (ScoreResultRecord) TableName() string {
	return "score_results"
}

// ResultRepository persists score results to Postgres via GORM.
type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Migrate creates the score_results table.
func (r *ResultRepository) Migrate() error {
	return r.db.AutoMigrate(&ScoreResultRecord{})
}

func (r *ResultRepository) Save(ctx context.Context, result *models.ScoreResult) error {
	record, err := toRecord(result)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save score result: %w", err)
	}
	return nil
}

// GetBySessionID reads a persisted result back by session id.
func (r *ResultRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.ScoreResult, error) {
	var record ScoreResultRecord
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load score result: %w", err)
	}
	return fromRecord(&record)
}

func toRecord(result *models.ScoreResult) (*ScoreResultRecord, error) {
	topics, err := json.Marshal(result.TopicPerformance)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal topic performance: %w", err)
	}
	weak, err := json.Marshal(result.WeakAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal weak areas: %w", err)
	}
	details, err := json.Marshal(result.QuestionDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question details: %w", err)
	}

	return &ScoreResultRecord{
		SessionID:        result.SessionID,
		ExamMode:         string(result.ExamMode),
		TotalQuestions:   result.TotalQuestions,
		CorrectAnswers:   result.CorrectAnswers,
		ScorePercentage:  result.ScorePercentage,
		Passed:           result.Passed,
		TimeTakenMinutes: result.TimeTakenMinutes,
		CompletionDate:   result.CompletionDate,
		TopicPerformance: datatypes.JSON(topics),
		WeakAreas:        datatypes.JSON(weak),
		QuestionDetails:  datatypes.JSON(details),
	}, nil
}

func fromRecord(record *ScoreResultRecord) (*models.ScoreResult, error) {
	result := &models.ScoreResult{
		SessionID:        record.SessionID,
		ExamMode:         models.SessionMode(record.ExamMode),
		TotalQuestions:   record.TotalQuestions,
		CorrectAnswers:   record.CorrectAnswers,
		ScorePercentage:  record.ScorePercentage,
		Passed:           record.Passed,
		TimeTakenMinutes: record.TimeTakenMinutes,
		CompletionDate:   record.CompletionDate,
	}

	if err := json.Unmarshal(record.TopicPerformance, &result.TopicPerformance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topic performance: %w", err)
	}
	if err := json.Unmarshal(record.WeakAreas, &result.WeakAreas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weak areas: %w", err)
	}
	if err := json.Unmarshal(record.QuestionDetails, &result.QuestionDetails); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question details: %w", err)
	}

	return result, nil
}
