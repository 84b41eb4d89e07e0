package services

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/certprep/exam-service/internal/config"
	"github.com/certprep/exam-service/internal/events"
	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/repositories"
	"github.com/certprep/exam-service/internal/store"
)

type scoringService struct {
	sessions   *store.SessionStore
	resultRepo repositories.ResultRepository
	cfg        config.ExamConfig
	publisher  events.EventPublisher
	logger     *slog.Logger
	opLog      *ServiceLogger

	now func() time.Time
}

func NewScoringService(
	sessions *store.SessionStore,
	resultRepo repositories.ResultRepository,
	cfg config.ExamConfig,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		sessions:   sessions,
		resultRepo: resultRepo,
		cfg:        cfg,
		publisher:  publisher,
		logger:     logger,
		opLog:      NewServiceLogger(logger, "scoring"),
		now:        time.Now,
	}
}

// Score grades the session in question order. Correctness is set equality
// between the candidate's selection and the question's correct ids; an
// unanswered question scores as an empty selection and is therefore always
// incorrect. The session itself is never mutated.
func (s *scoringService) Score(ctx context.Context, sessionID string) (result *models.ScoreResult, err error) {
	began := time.Now()
	defer func() {
		s.opLog.LogOperation(ctx, "score", sessionID, time.Since(began), err)
	}()

	session, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	totalQuestions := len(session.Questions)
	correctCount := 0

	type topicTally struct {
		topic   string
		total   int
		correct int
	}
	// Tallies keep encounter order so equal-percentage topics sort stably by
	// first appearance.
	var tallies []*topicTally
	tallyIndex := make(map[string]*topicTally)

	details := make([]models.QuestionDetail, 0, totalQuestions)

	for i := range session.Questions {
		question := &session.Questions[i]

		var selected []string
		bookmarked := false
		if answer := session.AnswerFor(question.ID); answer != nil {
			selected = answer.SelectedAnswers
			bookmarked = answer.Bookmarked
		}

		isCorrect := setsEqual(selected, question.CorrectAnswers)
		if isCorrect {
			correctCount++
		}

		tally := tallyIndex[question.Topic]
		if tally == nil {
			tally = &topicTally{topic: question.Topic}
			tallyIndex[question.Topic] = tally
			tallies = append(tallies, tally)
		}
		tally.total++
		if isCorrect {
			tally.correct++
		}

		details = append(details, models.QuestionDetail{
			QuestionID:     question.ID,
			QuestionText:   question.QuestionText,
			Topic:          question.Topic,
			UserAnswers:    append([]string{}, selected...),
			CorrectAnswers: append([]string{}, question.CorrectAnswers...),
			IsCorrect:      isCorrect,
			Explanation:    question.Explanation,
			Bookmarked:     bookmarked,
		})
	}

	scorePercentage := 0.0
	if totalQuestions > 0 {
		scorePercentage = roundToOneDecimal(float64(correctCount) / float64(totalQuestions) * 100)
	}

	topicPerformance := make([]models.TopicPerformance, 0, len(tallies))
	for _, tally := range tallies {
		percentage := 0.0
		if tally.total > 0 {
			percentage = roundToOneDecimal(float64(tally.correct) / float64(tally.total) * 100)
		}
		topicPerformance = append(topicPerformance, models.TopicPerformance{
			Topic:          tally.topic,
			TotalQuestions: tally.total,
			CorrectAnswers: tally.correct,
			Percentage:     percentage,
			IsWeakArea:     percentage < s.cfg.WeakAreaThresholdPercentage,
		})
	}

	sort.SliceStable(topicPerformance, func(i, j int) bool {
		return topicPerformance[i].Percentage < topicPerformance[j].Percentage
	})

	weakAreas := make([]string, 0)
	for _, tp := range topicPerformance {
		if tp.IsWeakArea {
			weakAreas = append(weakAreas, tp.Topic)
		}
	}

	completedAt := s.now()
	result = &models.ScoreResult{
		SessionID:        session.SessionID,
		ExamMode:         session.Mode,
		TotalQuestions:   totalQuestions,
		CorrectAnswers:   correctCount,
		ScorePercentage:  scorePercentage,
		Passed:           scorePercentage >= s.cfg.PassingScorePercentage,
		TimeTakenMinutes: int(completedAt.Sub(session.StartTime).Seconds()) / 60,
		CompletionDate:   completedAt,
		TopicPerformance: topicPerformance,
		WeakAreas:        weakAreas,
		QuestionDetails:  details,
	}

	s.logger.Info("Session scored",
		"session_id", session.SessionID,
		"score", result.ScorePercentage,
		"passed", result.Passed,
		"weak_areas", len(result.WeakAreas))

	// Persistence and event publishing are best-effort: a failed save is an
	// internal problem, not a failed scoring call.
	if err := s.resultRepo.Save(ctx, result); err != nil {
		s.logger.Error("Failed to persist score result",
			"session_id", session.SessionID,
			"error", err)
	}
	s.publishSessionScored(ctx, result)

	return result, nil
}

func (s *scoringService) publishSessionScored(ctx context.Context, result *models.ScoreResult) {
	event := &events.ExamEvent{
		ID:        uuid.NewString(),
		Type:      events.EventSessionScored,
		Timestamp: s.now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: events.SessionScoredEvent{
			SessionID:       result.SessionID,
			Mode:            result.ExamMode,
			TotalQuestions:  result.TotalQuestions,
			CorrectAnswers:  result.CorrectAnswers,
			ScorePercentage: result.ScorePercentage,
			Passed:          result.Passed,
			WeakAreas:       result.WeakAreas,
			CompletedAt:     result.CompletionDate,
		},
	}

	if err := s.publisher.PublishExamEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish session scored event",
			"session_id", result.SessionID,
			"error", err)
	}
}

// setsEqual reports whether two id lists contain the same set of values,
// ignoring order and duplicates.
func setsEqual(a, b []string) bool {
	setA := make(map[string]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}
	setB := make(map[string]bool, len(b))
	for _, v := range b {
		setB[v] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if !setB[v] {
			return false
		}
	}
	return true
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
