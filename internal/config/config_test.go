package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "jsonfile", cfg.ResultStore)
	assert.Equal(t, "data/exams.json", cfg.ExamsFile)

	exam := cfg.Exam
	assert.Equal(t, 90, exam.ExamDurationMinutes)
	assert.Equal(t, 70.0, exam.PassingScorePercentage)
	assert.Equal(t, 60, exam.QuestionsPerExam)
	assert.Equal(t, 65.0, exam.WeakAreaThresholdPercentage)
	assert.True(t, exam.AllowReview)
	assert.True(t, exam.RandomizeQuestions)
	assert.True(t, exam.RandomizeAnswers)
	assert.True(t, exam.ShowExplanationsInStudyMode)

	assert.False(t, cfg.Events.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXAM_DURATION_MINUTES", "120")
	t.Setenv("PASSING_SCORE_PERCENTAGE", "80.5")
	t.Setenv("RANDOMIZE_QUESTIONS", "false")
	t.Setenv("RESULT_STORE", "postgres")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 120, cfg.Exam.ExamDurationMinutes)
	assert.Equal(t, 80.5, cfg.Exam.PassingScorePercentage)
	assert.False(t, cfg.Exam.RandomizeQuestions)
	assert.Equal(t, "postgres", cfg.ResultStore)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EXAM_DURATION_MINUTES", "ninety")
	t.Setenv("PASSING_SCORE_PERCENTAGE", "")
	t.Setenv("ALLOW_REVIEW", "not-a-bool")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Exam.ExamDurationMinutes)
	assert.Equal(t, 70.0, cfg.Exam.PassingScorePercentage)
	assert.True(t, cfg.Exam.AllowReview)
}
