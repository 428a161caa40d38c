package handler

import (
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uofr/moodle-block-export-quiz/internal/middleware"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
)

// ExportHandler отдает файл экспорта викторины
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler создает новый обработчик скачивания
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Download handles GET ?id=&courseid=&format=&sesskey=. Session and sesskey
// are checked by middleware.
func (h *ExportHandler) Download(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	courseID, err := middleware.ParseUintQuery(c, "courseid")
	if err != nil {
		handleExportError(c, fmt.Errorf("%v: %w", err, apperrors.ErrConfiguration))
		return
	}
	quizID, err := middleware.ParseUintQuery(c, "id")
	if err != nil || quizID == 0 {
		handleExportError(c, fmt.Errorf("missing or invalid quiz id: %w", apperrors.ErrValidation))
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), service.ExportRequest{
		CourseID:  courseID,
		QuizID:    quizID,
		Format:    c.Query("format"),
		Requester: requester,
	})
	if err != nil {
		handleExportError(c, err)
		return
	}

	if len(result.Skipped) > 0 {
		log.Printf("[ExportHandler] Quiz #%d exported with %d skipped questions", quizID, len(result.Skipped))
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	c.Header("X-Export-Question-Count", strconv.Itoa(result.Exported))
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, result.MimeType, result.Content)
}
