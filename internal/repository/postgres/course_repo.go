package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

const quizModulesSQL = `
SELECT cm.id AS cmid,
       q.id AS quizid,
       q.course AS courseid,
       q.name,
       cm.visible,
       COALESCE(ctx.id, 0) AS contextid
  FROM {quiz} q
  JOIN {course_modules} cm ON cm.instance = q.id AND cm.course = q.course
  JOIN {modules} m ON m.id = cm.module AND m.name = 'quiz'
  LEFT JOIN {context} ctx ON ctx.instanceid = cm.id AND ctx.contextlevel = 70
 WHERE cm.deletioninprogress = 0`

// CourseRepo реализует repository.CourseRepository
type CourseRepo struct {
	db *gorm.DB
}

// NewCourseRepo создает новый репозиторий курсов
func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// GetQuizModules возвращает все викторины курса в порядке создания модулей
func (r *CourseRepo) GetQuizModules(ctx context.Context, courseID uint) ([]entity.QuizModule, error) {
	var modules []entity.QuizModule
	err := r.db.WithContext(ctx).
		Raw(hostSQL(r.db, quizModulesSQL+" AND q.course = ? ORDER BY cm.id"), courseID).
		Scan(&modules).Error
	if err != nil {
		return nil, classifyError("get quiz modules", err)
	}
	return modules, nil
}

// GetQuizModule возвращает викторину курса
func (r *CourseRepo) GetQuizModule(ctx context.Context, courseID, quizID uint) (*entity.QuizModule, error) {
	return r.first(ctx, quizModulesSQL+" AND q.course = ? AND q.id = ?", courseID, quizID)
}

// GetQuizModuleByQuizID возвращает викторину по ее ID
func (r *CourseRepo) GetQuizModuleByQuizID(ctx context.Context, quizID uint) (*entity.QuizModule, error) {
	return r.first(ctx, quizModulesSQL+" AND q.id = ?", quizID)
}

func (r *CourseRepo) first(ctx context.Context, query string, args ...interface{}) (*entity.QuizModule, error) {
	var modules []entity.QuizModule
	err := r.db.WithContext(ctx).
		Raw(hostSQL(r.db, query+" ORDER BY cm.id"), args...).
		Scan(&modules).Error
	if err != nil {
		return nil, classifyError("get quiz module", err)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("quiz module: %w", apperrors.ErrNotFound)
	}
	return &modules[0], nil
}
