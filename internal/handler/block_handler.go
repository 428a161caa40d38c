package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uofr/moodle-block-export-quiz/internal/handler/dto"
	"github.com/uofr/moodle-block-export-quiz/internal/middleware"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
)

// BlockHandler обрабатывает запросы блока на странице курса
type BlockHandler struct {
	blockService *service.BlockService
}

// NewBlockHandler создает новый обработчик блока
func NewBlockHandler(blockService *service.BlockService) *BlockHandler {
	return &BlockHandler{blockService: blockService}
}

// GetBlock возвращает список викторин курса и доступные форматы
func (h *BlockHandler) GetBlock(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}
	courseID := c.GetUint("courseid")

	content, err := h.blockService.GetContent(c.Request.Context(), courseID, requester)
	if err != nil {
		handleExportError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlockResponse(content))
}

// SubmitForm принимает выбор викторины и формата и перенаправляет на скачивание.
// JSON-клиенты получают ссылку в теле ответа.
func (h *BlockHandler) SubmitForm(c *gin.Context) {
	if _, ok := middleware.GetRequester(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	var req dto.BlockFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	target, err := h.blockService.DownloadURL(req.Quiz, req.Format)
	if err != nil {
		handleExportError(c, err)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "application/json") || c.ContentType() == "application/json" {
		c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: target})
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}
