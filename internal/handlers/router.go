package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	sessionHandler *SessionHandler
	importHandler  *ImportHandler
}

func NewHandlerManager(
	examHandler *ExamHandler,
	sessionHandler *SessionHandler,
	importHandler *ImportHandler,
) *HandlerManager {
	return &HandlerManager{
		examHandler:    examHandler,
		sessionHandler: sessionHandler,
		importHandler:  importHandler,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "exam-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/config", hm.examHandler.GetConfig)
		v1.GET("/statistics", hm.examHandler.GetStatistics)

		exams := v1.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
		}

		questions := v1.Group("/questions")
		{
			questions.POST("/import", hm.importHandler.ImportQuestions)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/start", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.GET("/:id/question", hm.sessionHandler.GetCurrentQuestion)
			sessions.POST("/:id/answer", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/navigate/:direction", hm.sessionHandler.Navigate)
			sessions.POST("/:id/jump/:number", hm.sessionHandler.Jump)
			sessions.GET("/:id/progress", hm.sessionHandler.GetProgress)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitExam)
			sessions.GET("/:id/review", hm.sessionHandler.GetReview)
			sessions.GET("/:id/result.xlsx", hm.sessionHandler.ExportResult)
		}
	}
}
