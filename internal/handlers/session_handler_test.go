package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certprep/exam-service/internal/models"
	"github.com/certprep/exam-service/internal/services"
	"github.com/certprep/exam-service/internal/utils"
)

// stubSessionService serves a single fixed session.
type stubSessionService struct {
	session *models.Session
}

func (s *stubSessionService) Create(ctx context.Context, req *services.StartSessionRequest) (*models.Session, error) {
	return s.session, nil
}

func (s *stubSessionService) Get(sessionID string) (*models.Session, error) {
	if s.session == nil || s.session.SessionID != sessionID {
		return nil, services.ErrSessionNotFound
	}
	return s.session, nil
}

func (s *stubSessionService) SubmitAnswer(sessionID string, req *services.SubmitAnswerRequest) bool {
	return s.session != nil && s.session.SessionID == sessionID
}

func (s *stubSessionService) NavigateTo(sessionID string, index int) bool {
	if s.session == nil || s.session.SessionID != sessionID {
		return false
	}
	if index < 0 || index >= len(s.session.Questions) {
		return false
	}
	s.session.CurrentQuestionIndex = index
	return true
}

func (s *stubSessionService) CurrentQuestion(sessionID string) *models.Question { return nil }

func (s *stubSessionService) UserAnswer(sessionID, questionID string) *models.UserAnswer { return nil }

func (s *stubSessionService) IsExpired(sessionID string) bool { return false }

func (s *stubSessionService) RemainingSeconds(sessionID string) *int { return nil }

func (s *stubSessionService) Progress(sessionID string) (*models.SessionProgress, error) {
	return &models.SessionProgress{}, nil
}

func (s *stubSessionService) Review(sessionID string) ([]models.ReviewEntry, error) {
	return nil, nil
}

func newJumpRouter(t *testing.T, session *models.Session) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewSessionHandler(&stubSessionService{session: session}, nil, nil, utils.NewValidator(), logger)

	router := gin.New()
	router.POST("/api/v1/sessions/:id/jump/:number", handler.Jump)
	return router
}

func TestJump(t *testing.T) {
	session := &models.Session{
		SessionID: "sess-1",
		Mode:      models.ModeExam,
		Questions: make([]models.Question, 3),
	}
	router := newJumpRouter(t, session)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"valid number", "/api/v1/sessions/sess-1/jump/2", http.StatusOK},
		{"unknown session", "/api/v1/sessions/missing/jump/2", http.StatusNotFound},
		{"number past the end", "/api/v1/sessions/sess-1/jump/99", http.StatusBadRequest},
		{"zero is below the first question", "/api/v1/sessions/sess-1/jump/0", http.StatusBadRequest},
		{"not a number", "/api/v1/sessions/sess-1/jump/two", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	require.Equal(t, 1, session.CurrentQuestionIndex, "jump is 1-based")
}
