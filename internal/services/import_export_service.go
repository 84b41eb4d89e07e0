package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/utils"
)

// Question import files carry one question per row. Answer options use the
// form "A:Option text|B:Other text"; correct answer ids and topics filters
// are comma separated.
var requiredImportColumns = []string{"id", "topic", "question_text", "answers", "correct_answers", "question_type"}

type importExportService struct {
	validator *utils.Validator
	logger    *slog.Logger
}

func NewImportExportService(validator *utils.Validator, logger *slog.Logger) ImportExportService {
	return &importExportService{
		validator: validator,
		logger:    logger,
	}
}

// ===== IMPORT =====

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) ([]models.Question, *models.ImportSummary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return s.importRows(records)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) ([]models.Question, *models.ImportSummary, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, NewValidationError("file", "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return s.importRows(rows)
}

func (s *importExportService) importRows(records [][]string) ([]models.Question, *models.ImportSummary, error) {
	if len(records) < 2 {
		return nil, nil, NewValidationError("file", "must have a header row and at least one data row", len(records))
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}

	for _, col := range requiredImportColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	summary := &models.ImportSummary{
		TotalRows: len(records) - 1,
	}

	var questions []models.Question
	for rowIndex, record := range records[1:] {
		summary.ProcessedRows++

		question, rowErrors := s.parseQuestionRow(record, headerMap, rowIndex+2)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
			continue
		}

		if err := s.validator.ValidateQuestion(question); err != nil {
			summary.Errors = append(summary.Errors, models.ImportValidationError{
				Row:     rowIndex + 2,
				Message: err.Error(),
				Value:   question.ID,
			})
			summary.ErrorCount++
			continue
		}

		questions = append(questions, *question)
		summary.SuccessCount++
	}

	s.logger.Info("Question import finished",
		"total_rows", summary.TotalRows,
		"imported", summary.SuccessCount,
		"rejected", summary.ErrorCount)

	return questions, summary, nil
}

func (s *importExportService) parseQuestionRow(record []string, headerMap map[string]int, row int) (*models.Question, []models.ImportValidationError) {
	var errs []models.ImportValidationError

	field := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	answers, answerErr := parseAnswerOptions(field("answers"))
	if answerErr != "" {
		errs = append(errs, models.ImportValidationError{
			Row:     row,
			Column:  "answers",
			Message: answerErr,
			Value:   field("answers"),
		})
	}

	question := &models.Question{
		ID:             field("id"),
		Topic:          field("topic"),
		QuestionText:   field("question_text"),
		Answers:        answers,
		CorrectAnswers: splitList(field("correct_answers")),
		Kind:           models.QuestionKind(field("question_type")),
		Difficulty:     models.DifficultyLevel(field("difficulty")),
	}

	if explanation := field("explanation"); explanation != "" {
		question.Explanation = &explanation
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	return question, errs
}

// parseAnswerOptions parses "A:Text|B:Text" into option structs.
func parseAnswerOptions(raw string) ([]models.AnswerOption, string) {
	if raw == "" {
		return nil, "answers column is empty"
	}

	parts := strings.Split(raw, "|")
	options := make([]models.AnswerOption, 0, len(parts))
	for _, part := range parts {
		id, text, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Sprintf("option %q is not in id:text form", part)
		}
		options = append(options, models.AnswerOption{
			ID:   strings.TrimSpace(id),
			Text: strings.TrimSpace(text),
		})
	}
	return options, ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ===== EXPORT =====

// ExportResultToExcel renders a score result as a two-sheet workbook:
// a summary with the topic breakdown, and the per-question details.
func (s *importExportService) ExportResultToExcel(ctx context.Context, result *models.ScoreResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Session", result.SessionID},
		{"Mode", string(result.ExamMode)},
		{"Questions", result.TotalQuestions},
		{"Correct", result.CorrectAnswers},
		{"Score %", result.ScorePercentage},
		{"Passed", result.Passed},
		{"Time taken (min)", result.TimeTakenMinutes},
		{"Completed", result.CompletionDate.Format("2006-01-02 15:04:05")},
		{},
		{"Topic", "Questions", "Correct", "Percentage", "Weak area"},
	}
	for _, tp := range result.TopicPerformance {
		summaryRows = append(summaryRows, []interface{}{
			tp.Topic, tp.TotalQuestions, tp.CorrectAnswers, tp.Percentage, tp.IsWeakArea,
		})
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	details := "Questions"
	if _, err := f.NewSheet(details); err != nil {
		return nil, fmt.Errorf("failed to create details sheet: %w", err)
	}

	detailRows := [][]interface{}{
		{"Question ID", "Topic", "Question", "Your answer", "Correct answer", "Correct", "Bookmarked"},
	}
	for _, d := range result.QuestionDetails {
		detailRows = append(detailRows, []interface{}{
			d.QuestionID,
			d.Topic,
			d.QuestionText,
			strings.Join(d.UserAnswers, ", "),
			strings.Join(d.CorrectAnswers, ", "),
			d.IsCorrect,
			d.Bookmarked,
		})
	}
	for i, row := range detailRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(details, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write detail row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
