package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/certprep/exam-service/internal/config"
	"github.com/certprep/exam-service/internal/events"
	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/repositories"
	"github.com/certprep/exam-service/internal/store"
	"github.com/certprep/exam-service/internal/utils"
)

type sessionService struct {
	examRepo  repositories.ExamRepository
	sessions  *store.SessionStore
	cfg       config.ExamConfig
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator

	// rng drives question sampling and option shuffling. It is injected so
	// tests can seed it; rand.Rand is not safe for concurrent use, hence the
	// mutex.
	rngMu sync.Mutex
	rng   *rand.Rand

	// now is swapped out in tests to exercise expiry.
	now func() time.Time
}

func NewSessionService(
	examRepo repositories.ExamRepository,
	sessions *store.SessionStore,
	cfg config.ExamConfig,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
	rng *rand.Rand,
) SessionService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &sessionService{
		examRepo:  examRepo,
		sessions:  sessions,
		cfg:       cfg,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		rng:       rng,
		now:       time.Now,
	}
}

// ===== SESSION CREATION =====

func (s *sessionService) Create(ctx context.Context, req *StartSessionRequest) (*models.Session, error) {
	s.logger.Info("Starting exam session",
		"exam_id", req.ExamID,
		"mode", req.Mode,
		"topics", req.Topics)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeExam
	}

	exam, err := s.examRepo.GetExamDefinition(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to resolve exam %s: %w", req.ExamID, err)
	}

	pool, err := s.examRepo.LoadQuestionBank(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to load question bank for %s: %w", req.ExamID, err)
	}
	if len(pool) == 0 {
		return nil, ErrQuestionBankEmpty
	}

	if len(req.Topics) > 0 {
		pool = filterByTopics(pool, req.Topics)
		if len(pool) == 0 {
			// The original system creates a zero-question session here; we
			// keep that behavior but make it visible in the logs.
			s.logger.Warn("Topic filter matched no questions",
				"exam_id", req.ExamID,
				"topics", req.Topics)
		}
	}

	target := exam.TotalQuestions
	if req.QuestionCount != nil {
		target = *req.QuestionCount
	}
	if target > len(pool) {
		target = len(pool)
	}

	selected := s.selectQuestions(pool, target)
	if s.cfg.RandomizeAnswers {
		s.shuffleOptions(selected)
	}

	session := &models.Session{
		SessionID:            uuid.NewString(),
		Mode:                 mode,
		Questions:            selected,
		StartTime:            s.now(),
		CurrentQuestionIndex: 0,
		UserAnswers:          []models.UserAnswer{},
	}
	if mode == models.ModeExam {
		duration := exam.DurationMinutes
		session.DurationMinutes = &duration
	}

	s.sessions.Put(session)

	s.logger.Info("Exam session started",
		"session_id", session.SessionID,
		"exam_id", req.ExamID,
		"question_count", len(selected),
		"timed", session.DurationMinutes != nil)

	s.publishSessionStarted(ctx, session, req.ExamID)

	return session, nil
}

// selectQuestions picks the session's question snapshot from the candidate
// pool: uniform sampling without replacement when randomization is on, the
// pool's own order otherwise. Either way the snapshot holds clones.
func (s *sessionService) selectQuestions(pool []models.Question, count int) []models.Question {
	selected := make([]models.Question, 0, count)

	if s.cfg.RandomizeQuestions {
		s.rngMu.Lock()
		perm := s.rng.Perm(len(pool))
		s.rngMu.Unlock()
		for _, idx := range perm[:count] {
			selected = append(selected, pool[idx].Clone())
		}
		return selected
	}

	for i := 0; i < count; i++ {
		selected = append(selected, pool[i].Clone())
	}
	return selected
}

// shuffleOptions randomizes option display order in place. The questions are
// session-owned clones, so the shared bank stays untouched, and correctness
// is tracked by option id, not position.
func (s *sessionService) shuffleOptions(questions []models.Question) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := range questions {
		answers := questions[i].Answers
		s.rng.Shuffle(len(answers), func(a, b int) {
			answers[a], answers[b] = answers[b], answers[a]
		})
	}
}

func filterByTopics(pool []models.Question, topics []string) []models.Question {
	allowed := make(map[string]bool, len(topics))
	for _, t := range topics {
		allowed[t] = true
	}

	filtered := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		if allowed[q.Topic] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

func (s *sessionService) publishSessionStarted(ctx context.Context, session *models.Session, examID string) {
	event := &events.ExamEvent{
		ID:        uuid.NewString(),
		Type:      events.EventSessionStarted,
		Timestamp: s.now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: events.SessionStartedEvent{
			SessionID:       session.SessionID,
			ExamID:          examID,
			Mode:            session.Mode,
			QuestionCount:   len(session.Questions),
			DurationMinutes: session.DurationMinutes,
			StartedAt:       session.StartTime,
		},
	}

	if err := s.publisher.PublishExamEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish session started event",
			"session_id", session.SessionID,
			"error", err)
	}
}

// ===== LOOKUPS =====

// Get returns a snapshot of the session. Callers hold it outside the store
// lock (handlers marshal it), so it must be detached from concurrent writes.
func (s *sessionService) Get(sessionID string) (*models.Session, error) {
	session, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) CurrentQuestion(sessionID string) *models.Question {
	var question *models.Question
	s.sessions.View(sessionID, func(session *models.Session) {
		if q := session.CurrentQuestion(); q != nil {
			cloned := q.Clone()
			question = &cloned
		}
	})
	return question
}

func (s *sessionService) UserAnswer(sessionID, questionID string) *models.UserAnswer {
	var answer *models.UserAnswer
	s.sessions.View(sessionID, func(session *models.Session) {
		if a := session.AnswerFor(questionID); a != nil {
			copied := *a
			answer = &copied
		}
	})
	return answer
}

// ===== MUTATIONS =====

// SubmitAnswer records the candidate's selection, replacing any earlier
// answer for the same question. Question and option ids are stored as given;
// the session's question list is deliberately not consulted (the boundary
// layer owns input hygiene, and the original system behaves the same way).
func (s *sessionService) SubmitAnswer(sessionID string, req *SubmitAnswerRequest) bool {
	ok := s.sessions.Update(sessionID, func(session *models.Session) {
		kept := session.UserAnswers[:0]
		for _, a := range session.UserAnswers {
			if a.QuestionID != req.QuestionID {
				kept = append(kept, a)
			}
		}
		session.UserAnswers = append(kept, models.UserAnswer{
			QuestionID:      req.QuestionID,
			SelectedAnswers: append([]string(nil), req.SelectedAnswers...),
			Bookmarked:      req.Bookmarked,
		})
	})

	if !ok {
		s.logger.Warn("Answer submitted for unknown session", "session_id", sessionID)
		return false
	}

	s.logger.Debug("Answer recorded",
		"session_id", sessionID,
		"question_id", req.QuestionID,
		"selected", len(req.SelectedAnswers))
	return true
}

// NavigateTo moves the cursor to index. Out-of-range indexes leave the
// cursor unchanged; there is no wraparound.
func (s *sessionService) NavigateTo(sessionID string, index int) bool {
	moved := false
	s.sessions.Update(sessionID, func(session *models.Session) {
		if index >= 0 && index < len(session.Questions) {
			session.CurrentQuestionIndex = index
			moved = true
		}
	})
	return moved
}

// ===== TIMING =====

func (s *sessionService) IsExpired(sessionID string) bool {
	expired := false
	s.sessions.View(sessionID, func(session *models.Session) {
		if session.DurationMinutes == nil {
			return
		}
		elapsed := s.now().Sub(session.StartTime)
		expired = elapsed > time.Duration(*session.DurationMinutes)*time.Minute
	})
	return expired
}

func (s *sessionService) RemainingSeconds(sessionID string) *int {
	var remaining *int
	s.sessions.View(sessionID, func(session *models.Session) {
		if session.DurationMinutes == nil {
			return
		}
		limit := time.Duration(*session.DurationMinutes) * time.Minute
		left := int((limit - s.now().Sub(session.StartTime)).Seconds())
		if left < 0 {
			left = 0
		}
		remaining = &left
	})
	return remaining
}

// ===== PROGRESS AND REVIEW =====

func (s *sessionService) Progress(sessionID string) (*models.SessionProgress, error) {
	var progress *models.SessionProgress
	found := s.sessions.View(sessionID, func(session *models.Session) {
		total := len(session.Questions)
		answered := len(session.UserAnswers)
		bookmarked := 0
		for _, a := range session.UserAnswers {
			if a.Bookmarked {
				bookmarked++
			}
		}

		completion := 0.0
		if total > 0 {
			completion = roundToOneDecimal(float64(answered) / float64(total) * 100)
		}

		progress = &models.SessionProgress{
			TotalQuestions:       total,
			Answered:             answered,
			Unanswered:           total - answered,
			Bookmarked:           bookmarked,
			CompletionPercentage: completion,
		}
	})
	if !found {
		return nil, ErrSessionNotFound
	}
	return progress, nil
}

func (s *sessionService) Review(sessionID string) ([]models.ReviewEntry, error) {
	session, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entries := make([]models.ReviewEntry, 0, len(session.Questions))
	for i := range session.Questions {
		question := session.Questions[i]
		answer := session.AnswerFor(question.ID)

		correct := false
		if answer != nil {
			correct = setsEqual(answer.SelectedAnswers, question.CorrectAnswers)
		}

		entries = append(entries, models.ReviewEntry{
			QuestionNumber: i + 1,
			Question:       question,
			UserAnswer:     answer,
			IsCorrect:      correct,
		})
	}
	return entries, nil
}
