package dto

import (
	"github.com/uofr/moodle-block-export-quiz/internal/format"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
)

// BlockQuizResponse представляет викторину в селекторе блока
type BlockQuizResponse struct {
	QuizID         uint   `json:"quiz_id"`
	CourseModuleID uint   `json:"cmid"`
	Name           string `json:"name"`
	URL            string `json:"url"`
}

// FormatResponse представляет формат экспорта в селекторе блока
type FormatResponse struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	MimeType  string `json:"mime_type"`
}

// BlockResponse - содержимое блока экспорта. Пустой Quizzes означает,
// что блок не показывается.
type BlockResponse struct {
	CourseID uint                `json:"course_id"`
	Visible  bool                `json:"visible"`
	Quizzes  []BlockQuizResponse `json:"quizzes"`
	Formats  []FormatResponse    `json:"formats"`
}

// BlockFormRequest - отправка формы блока: ссылка на викторину и формат
type BlockFormRequest struct {
	Quiz   string `json:"quiz" form:"quiz" binding:"required"`
	Format string `json:"format" form:"format" binding:"required"`
}

// RedirectResponse возвращается на отправку формы из JS
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// NewBlockResponse создает DTO содержимого блока
func NewBlockResponse(content *service.BlockContent) *BlockResponse {
	resp := &BlockResponse{
		CourseID: content.CourseID,
		Visible:  len(content.Quizzes) > 0,
		Quizzes:  make([]BlockQuizResponse, 0, len(content.Quizzes)),
		Formats:  make([]FormatResponse, 0, len(content.Formats)),
	}
	for _, q := range content.Quizzes {
		resp.Quizzes = append(resp.Quizzes, BlockQuizResponse{
			QuizID:         q.QuizID,
			CourseModuleID: q.CourseModuleID,
			Name:           q.Name,
			URL:            q.URL,
		})
	}
	for _, f := range content.Formats {
		resp.Formats = append(resp.Formats, newFormatResponse(f))
	}
	return resp
}

func newFormatResponse(f format.Info) FormatResponse {
	return FormatResponse{Name: f.Name, Extension: f.Extension, MimeType: f.MimeType}
}
