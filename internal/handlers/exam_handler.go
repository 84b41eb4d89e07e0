package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/certprep/exam-service/internal/config"
	"github.com/certprep/exam-service/internal/repositories"
	"github.com/certprep/exam-service/internal/services"
	"github.com/certprep/exam-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	examRepo     repositories.ExamRepository
	statsService services.StatsService
	examConfig   config.ExamConfig
}

func NewExamHandler(
	examRepo repositories.ExamRepository,
	statsService services.StatsService,
	examConfig config.ExamConfig,
	logger utils.Logger,
) *ExamHandler {
	return &ExamHandler{
		BaseHandler:  NewBaseHandler(logger),
		examRepo:     examRepo,
		statsService: statsService,
		examConfig:   examConfig,
	}
}

// GetConfig returns the effective exam delivery settings
// @Router /config [get]
func (h *ExamHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.examConfig)
}

// ListExams returns every exam in the catalog
// @Summary List exams
// @Success 200 {object} SuccessResponse
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	exams, err := h.examRepo.LoadExamDefinitions(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to load exams", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exams": exams})
}

// GetExam returns one exam definition
// @Router /exams/{id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID := ParseStringIDParam(c, "id")
	if examID == "" {
		return
	}

	exam, err := h.examRepo.GetExamDefinition(c.Request.Context(), examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			h.RespondWithError(c, http.StatusNotFound, "Exam not found", nil, examID)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to load exam", err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// GetStatistics returns question bank statistics, for one exam when the
// exam_id query parameter is set, otherwise for the whole catalog.
// @Router /statistics [get]
func (h *ExamHandler) GetStatistics(c *gin.Context) {
	if examID := c.Query("exam_id"); examID != "" {
		stats, err := h.statsService.ExamStats(c.Request.Context(), examID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := h.statsService.CatalogStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
