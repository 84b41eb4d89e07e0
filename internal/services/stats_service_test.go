package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certprep/exam-service/internal/models"
)

func TestExamStats(t *testing.T) {
	hard := makeQuestion("q3", "Storage", "A")
	hard.Difficulty = models.DifficultyHard
	noDifficulty := makeQuestion("q4", "Security", "A")
	noDifficulty.Difficulty = ""

	repo := &fakeExamRepo{
		exams: map[string]models.ExamDefinition{
			"aws-saa": {ID: "aws-saa", Name: "AWS SAA", QuestionsFile: "aws.json", DurationMinutes: 90, TotalQuestions: 4},
		},
		banks: map[string][]models.Question{
			"aws-saa": {
				makeQuestion("q1", "Networking", "A"),
				makeQuestion("q2", "Networking", "B"),
				hard,
				noDifficulty,
			},
		},
	}

	svc := NewStatsService(repo, testLogger())

	stats, err := svc.ExamStats(context.Background(), "aws-saa")
	require.NoError(t, err)

	assert.Equal(t, "aws-saa", stats.ExamID)
	assert.Equal(t, 4, stats.TotalQuestions)
	assert.Equal(t, map[string]int{"Networking": 2, "Storage": 1, "Security": 1}, stats.ByTopic)
	assert.Equal(t, 3, stats.ByDifficulty["medium"], "missing difficulty counts as medium")
	assert.Equal(t, 1, stats.ByDifficulty["hard"])
	assert.Equal(t, 0, stats.ByDifficulty["easy"])
}

func TestExamStats_UnknownExam(t *testing.T) {
	repo := &fakeExamRepo{exams: map[string]models.ExamDefinition{}}
	svc := NewStatsService(repo, testLogger())

	_, err := svc.ExamStats(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestCatalogStats(t *testing.T) {
	repo := &fakeExamRepo{
		exams: map[string]models.ExamDefinition{
			"aws-saa": {ID: "aws-saa", Name: "AWS SAA", QuestionsFile: "aws.json", DurationMinutes: 90, TotalQuestions: 2},
			"az-900":  {ID: "az-900", Name: "Azure Fundamentals", QuestionsFile: "az.json", DurationMinutes: 60, TotalQuestions: 1},
		},
		banks: map[string][]models.Question{
			"aws-saa": {makeQuestion("q1", "Networking", "A"), makeQuestion("q2", "Storage", "A")},
			"az-900":  {makeQuestion("q1", "Governance", "A")},
		},
	}

	svc := NewStatsService(repo, testLogger())

	catalog, err := svc.CatalogStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.TotalExams)
	require.Contains(t, catalog.ByExam, "aws-saa")
	require.Contains(t, catalog.ByExam, "az-900")
	assert.Equal(t, 2, catalog.ByExam["aws-saa"].TotalQuestions)
	assert.Equal(t, 1, catalog.ByExam["az-900"].TotalQuestions)
}
