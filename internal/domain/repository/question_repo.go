package repository

import (
	"context"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// QuestionRepository определяет методы загрузки полного содержимого вопросов
type QuestionRepository interface {
	// LoadQuestionData loads a question with its answers and category.
	LoadQuestionData(ctx context.Context, questionID uint) (*entity.QuestionData, error)
}
