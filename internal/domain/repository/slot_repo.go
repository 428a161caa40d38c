package repository

import (
	"context"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// SlotRepository определяет методы разрешения слотов викторины в версии вопросов
type SlotRepository interface {
	// ResolveSlots returns one row per slot of the quiz ordered by slot number.
	// quizContextID scopes the question and set references.
	ResolveSlots(ctx context.Context, quizID, quizContextID uint) ([]entity.SlotResolution, error)
	// QuizzesWithQuestions returns the subset of quizIDs with at least one
	// slot resolving to a concrete question version.
	QuizzesWithQuestions(ctx context.Context, quizIDs []uint) ([]uint, error)
}
