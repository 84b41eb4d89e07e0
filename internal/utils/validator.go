package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/certprep/exam-service/internal/errors"
	"github.com/certprep/exam-service/internal/models"
)

// Validator combines struct-tag validation with the question invariant checks
// that tags alone cannot express.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with all custom rules registered.
func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate validates struct tags and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// ValidateQuestion checks a question's structural invariants: unique option
// ids, every correct answer id present among the options, and single-choice
// questions carrying exactly one correct answer.
func (v *Validator) ValidateQuestion(q *models.Question) error {
	if err := v.Validate(q); err != nil {
		return err
	}

	optionIDs := make(map[string]bool, len(q.Answers))
	for _, opt := range q.Answers {
		if optionIDs[opt.ID] {
			return apperrors.NewValidationError("answers", fmt.Sprintf("duplicate option id %q", opt.ID), opt.ID)
		}
		optionIDs[opt.ID] = true
	}

	for _, id := range q.CorrectAnswers {
		if !optionIDs[id] {
			return apperrors.NewValidationError("correct_answers", fmt.Sprintf("id %q does not match any option", id), id)
		}
	}

	if q.Kind == models.SingleChoice && len(q.CorrectAnswers) != 1 {
		return apperrors.NewValidationError("correct_answers", "single_choice questions must have exactly one correct answer", len(q.CorrectAnswers))
	}

	return nil
}

// ValidateQuestionBatch validates every question of a bank, reporting the
// first failure with its position.
func (v *Validator) ValidateQuestionBatch(questions []models.Question) error {
	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			return fmt.Errorf("question %d (%s): %w", i+1, questions[i].ID, err)
		}
	}
	return nil
}

// Custom validation functions

func ValidateQuestionKind(fl validator.FieldLevel) bool {
	validKinds := []models.QuestionKind{
		models.SingleChoice,
		models.MultipleChoice,
	}

	value := fl.Field().String()
	for _, validKind := range validKinds {
		if string(validKind) == value {
			return true
		}
	}
	return false
}

func ValidateDifficultyLevel(fl validator.FieldLevel) bool {
	validLevels := []models.DifficultyLevel{
		models.DifficultyEasy,
		models.DifficultyMedium,
		models.DifficultyHard,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func ValidateSessionMode(fl validator.FieldLevel) bool {
	validModes := []models.SessionMode{
		models.ModeExam,
		models.ModeStudy,
	}

	value := fl.Field().String()
	for _, validMode := range validModes {
		if string(validMode) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_kind", ValidateQuestionKind)
	validate.RegisterValidation("difficulty_level", ValidateDifficultyLevel)
	validate.RegisterValidation("session_mode", ValidateSessionMode)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
