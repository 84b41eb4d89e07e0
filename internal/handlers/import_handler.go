package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/certprep/exam-service/internal/services"
	"github.com/certprep/exam-service/internal/utils"
)

type ImportHandler struct {
	BaseHandler
	importService services.ImportExportService
}

func NewImportHandler(importService services.ImportExportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
	}
}

// ImportQuestions parses an uploaded CSV or XLSX question file and returns
// the parsed questions together with a per-row validation summary. Rows that
// fail validation are reported, not silently dropped.
// @Summary Import questions from a spreadsheet
// @Accept multipart/form-data
// @Param file formData file true "CSV or XLSX question file"
// @Router /questions/import [post]
func (h *ImportHandler) ImportQuestions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open upload", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing questions", "filename", fileHeader.Filename, "size", fileHeader.Size)

	ctx := c.Request.Context()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	var questions interface{}
	var summary interface{}
	switch ext {
	case ".csv":
		q, s, importErr := h.importService.ImportQuestionsFromCSV(ctx, file)
		if importErr != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Import failed", importErr, importErr.Error())
			return
		}
		questions, summary = q, s
	case ".xlsx":
		q, s, importErr := h.importService.ImportQuestionsFromExcel(ctx, file)
		if importErr != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Import failed", importErr, importErr.Error())
			return
		}
		questions, summary = q, s
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported file type", nil, ext)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"summary":   summary,
	})
}
