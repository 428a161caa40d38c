package repository

import (
	"context"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// CourseRepository определяет методы чтения курсов и модулей викторин хоста
type CourseRepository interface {
	// GetQuizModules возвращает все экземпляры викторин курса
	GetQuizModules(ctx context.Context, courseID uint) ([]entity.QuizModule, error)
	// GetQuizModule возвращает викторину курса, apperrors.ErrNotFound если ее нет
	GetQuizModule(ctx context.Context, courseID, quizID uint) (*entity.QuizModule, error)
	// GetQuizModuleByQuizID ищет викторину без привязки к курсу
	GetQuizModuleByQuizID(ctx context.Context, quizID uint) (*entity.QuizModule, error)
}
