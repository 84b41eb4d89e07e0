package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/utils"
)

func newImportService(t *testing.T) ImportExportService {
	t.Helper()
	return NewImportExportService(utils.NewValidator(), testLogger())
}

const validCSV = `id,topic,question_text,answers,correct_answers,question_type,difficulty,explanation
q1,Networking,What is a VPC?,A:Virtual network|B:Physical switch|C:DNS record,A,single_choice,easy,A VPC is an isolated virtual network.
q2,Storage,Which services are object stores?,A:S3|B:EBS|C:Glacier,"A,C",multiple_choice,,
`

func TestImportQuestionsFromCSV(t *testing.T) {
	svc := newImportService(t)

	questions, summary, err := svc.ImportQuestionsFromCSV(context.Background(), strings.NewReader(validCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)
	require.Len(t, questions, 2)

	q1 := questions[0]
	assert.Equal(t, "q1", q1.ID)
	assert.Equal(t, "Networking", q1.Topic)
	assert.Equal(t, models.SingleChoice, q1.Kind)
	assert.Equal(t, models.DifficultyEasy, q1.Difficulty)
	require.NotNil(t, q1.Explanation)
	assert.Equal(t, "A VPC is an isolated virtual network.", *q1.Explanation)
	assert.Equal(t, []string{"A", "B", "C"}, q1.OptionIDs())
	assert.Equal(t, "Virtual network", q1.Answers[0].Text)

	q2 := questions[1]
	assert.Equal(t, models.MultipleChoice, q2.Kind)
	assert.Equal(t, []string{"A", "C"}, q2.CorrectAnswers)
	assert.Equal(t, models.DifficultyMedium, q2.Difficulty, "missing difficulty defaults to medium")
	assert.Nil(t, q2.Explanation)
}

func TestImportQuestionsFromCSV_MissingColumn(t *testing.T) {
	svc := newImportService(t)

	csv := "id,topic,question_text,answers,question_type\nq1,T,Q,A:a|B:b,single_choice\n"
	_, _, err := svc.ImportQuestionsFromCSV(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correct_answers")
}

func TestImportQuestionsFromCSV_HeaderOnly(t *testing.T) {
	svc := newImportService(t)

	csv := "id,topic,question_text,answers,correct_answers,question_type\n"
	_, _, err := svc.ImportQuestionsFromCSV(context.Background(), strings.NewReader(csv))
	assert.Error(t, err)
}

func TestImportQuestionsFromCSV_CollectsRowErrors(t *testing.T) {
	svc := newImportService(t)

	csv := `id,topic,question_text,answers,correct_answers,question_type
q1,Networking,Valid question,A:Yes|B:No,A,single_choice
q2,Networking,Bad options,not-pipe-separated,A,single_choice
q3,Networking,Correct id not an option,A:Yes|B:No,Z,single_choice
q4,Networking,Two correct for single choice,A:Yes|B:No,"A,B",single_choice
`

	questions, summary, err := svc.ImportQuestionsFromCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalRows)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 3, summary.ErrorCount)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)

	require.Len(t, summary.Errors, 3)
	assert.Equal(t, 3, summary.Errors[0].Row, "row numbers are 1-based and include the header")
}

func TestImportQuestionsFromExcel(t *testing.T) {
	svc := newImportService(t)

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"id", "topic", "question_text", "answers", "correct_answers", "question_type"},
		{"q1", "Security", "Which service manages keys?", "A:KMS|B:S3", "A", "single_choice"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	questions, summary, err := svc.ImportQuestionsFromExcel(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "Security", questions[0].Topic)
}

func TestImportQuestionsFromExcel_NotAWorkbook(t *testing.T) {
	svc := newImportService(t)

	_, _, err := svc.ImportQuestionsFromExcel(context.Background(), strings.NewReader("plain text"))
	assert.Error(t, err)
}

func TestExportResultToExcel(t *testing.T) {
	svc := newImportService(t)

	explanation := "Use a VPC."
	result := &models.ScoreResult{
		SessionID:        "sess-1",
		ExamMode:         models.ModeExam,
		TotalQuestions:   2,
		CorrectAnswers:   1,
		ScorePercentage:  50.0,
		Passed:           false,
		TimeTakenMinutes: 30,
		CompletionDate:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		TopicPerformance: []models.TopicPerformance{
			{Topic: "Networking", TotalQuestions: 2, CorrectAnswers: 1, Percentage: 50.0, IsWeakArea: true},
		},
		WeakAreas: []string{"Networking"},
		QuestionDetails: []models.QuestionDetail{
			{QuestionID: "q1", Topic: "Networking", QuestionText: "Q1", UserAnswers: []string{"A"}, CorrectAnswers: []string{"A"}, IsCorrect: true, Explanation: &explanation},
			{QuestionID: "q2", Topic: "Networking", QuestionText: "Q2", UserAnswers: []string{"B"}, CorrectAnswers: []string{"A"}, IsCorrect: false},
		},
	}

	data, err := svc.ExportResultToExcel(context.Background(), result)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Questions"}, f.GetSheetList())

	sessionCell, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionCell)

	detailRows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, detailRows, 3)
	assert.Equal(t, "q1", detailRows[1][0])
}
