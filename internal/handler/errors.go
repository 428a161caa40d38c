package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uofr/moodle-block-export-quiz/internal/format"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

// handleExportError переводит ошибки сервисов в HTTP ответы
func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "missingcourseorcmid"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "token_invalid"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "noaccess"})
	case errors.Is(err, format.ErrUnknownFormat):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "unknownformat"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrEmptyResult):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "no_questions"})
	case errors.Is(err, apperrors.ErrEncoding):
		log.Printf("[ExportHandler] Export file not generated: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found", "error_type": "filenotfound"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
	default:
		log.Printf("ERROR: Internal server error in export handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
