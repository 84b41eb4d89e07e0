package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/certprep/exam-service/internal/services"
	"github.com/certprep/exam-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	scoringService services.ScoringService
	exportService  services.ImportExportService
	validator      *utils.Validator
}

func NewSessionHandler(
	sessionService services.SessionService,
	scoringService services.ScoringService,
	exportService services.ImportExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		scoringService: scoringService,
		exportService:  exportService,
		validator:      validator,
	}
}

// StartSession creates a new exam or study session
// @Summary Start session
// @Param request body services.StartSessionRequest true "Session configuration"
// @Success 200 {object} models.Session
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/start [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Starting session", "exam_id", req.ExamID, "mode", req.Mode)

	session, err := h.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSession returns the full session state
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	session, err := h.sessionService.Get(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetCurrentQuestion returns the question at the navigation cursor along
// with the candidate's recorded answer and the remaining time.
// @Router /sessions/{id}/question [get]
func (h *SessionHandler) GetCurrentQuestion(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	session, err := h.sessionService.Get(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	question := h.sessionService.CurrentQuestion(sessionID)
	if question == nil {
		h.RespondWithError(c, http.StatusNotFound, "Question not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":               question,
		"question_number":        session.CurrentQuestionIndex + 1,
		"total_questions":        session.QuestionCount(),
		"user_answer":            h.sessionService.UserAnswer(sessionID, question.ID),
		"remaining_time_seconds": h.sessionService.RemainingSeconds(sessionID),
		"is_expired":             h.sessionService.IsExpired(sessionID),
	})
}

// SubmitAnswer records an answer for a question
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err.Error())
		return
	}

	if !h.sessionService.SubmitAnswer(sessionID, &req) {
		h.RespondWithError(c, http.StatusNotFound, "Session not found", nil, sessionID)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Answer recorded"})
}

// Navigate moves to the next or previous question, clamping at the ends.
// @Router /sessions/{id}/navigate/{direction} [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	session, err := h.sessionService.Get(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	index := session.CurrentQuestionIndex
	switch c.Param("direction") {
	case "next":
		if index < session.QuestionCount()-1 {
			index++
		}
	case "previous":
		if index > 0 {
			index--
		}
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Invalid direction", nil, c.Param("direction"))
		return
	}

	h.sessionService.NavigateTo(sessionID, index)

	c.JSON(http.StatusOK, gin.H{
		"current_index":   index,
		"question_number": index + 1,
	})
}

// Jump moves to a specific 1-based question number
// @Router /sessions/{id}/jump/{number} [post]
func (h *SessionHandler) Jump(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	if _, err := h.sessionService.Get(sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid question number", err, c.Param("number"))
		return
	}

	index := number - 1
	if !h.sessionService.NavigateTo(sessionID, index) {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid question number", nil, number)
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_index": index})
}

// GetProgress returns the answered/bookmarked summary
// @Router /sessions/{id}/progress [get]
func (h *SessionHandler) GetProgress(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	progress, err := h.sessionService.Progress(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// SubmitExam scores the session and returns the result breakdown
// @Summary Submit session for grading
// @Success 200 {object} models.ScoreResult
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitExam(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	h.LogRequest(c, "Scoring session", "session_id", sessionID)

	result, err := h.scoringService.Score(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReview returns every question with the candidate's answer for review
// @Router /sessions/{id}/review [get]
func (h *SessionHandler) GetReview(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	entries, err := h.sessionService.Review(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": entries})
}

// ExportResult scores the session and streams the result as a workbook
// @Router /sessions/{id}/result.xlsx [get]
func (h *SessionHandler) ExportResult(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	result, err := h.scoringService.Score(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.exportService.ExportResultToExcel(c.Request.Context(), result)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export result", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=result_"+sessionID+".xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
