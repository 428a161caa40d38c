package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/domain/repository"
)

// SlotResolver определяет, какая версия вопроса действует в каждом слоте викторины
type SlotResolver struct {
	courseRepo repository.CourseRepository
	slotRepo   repository.SlotRepository
}

// NewSlotResolver создает новый резолвер слотов
func NewSlotResolver(courseRepo repository.CourseRepository, slotRepo repository.SlotRepository) *SlotResolver {
	return &SlotResolver{
		courseRepo: courseRepo,
		slotRepo:   slotRepo,
	}
}

// Resolve returns one SlotResolution per slot of the quiz, ordered by slot
// number. A missing quiz fails with apperrors.ErrNotFound; a quiz without
// resolvable questions is not an error here.
func (s *SlotResolver) Resolve(ctx context.Context, quizID uint) ([]entity.SlotResolution, error) {
	module, err := s.courseRepo.GetQuizModuleByQuizID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz #%d: %w", quizID, err)
	}
	return s.ResolveModule(ctx, module)
}

// ResolveModule is Resolve for an already loaded quiz module.
func (s *SlotResolver) ResolveModule(ctx context.Context, module *entity.QuizModule) ([]entity.SlotResolution, error) {
	rows, err := s.slotRepo.ResolveSlots(ctx, module.QuizID, module.ContextID)
	if err != nil {
		return nil, fmt.Errorf("resolve slots of quiz #%d: %w", module.QuizID, err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SlotNumber < rows[j].SlotNumber
	})
	return rows, nil
}
