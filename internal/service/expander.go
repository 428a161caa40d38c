package service

import (
	"context"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// RandomSlotExpander picks a concrete question for a slot that references a
// question filter instead of a fixed question. ok is false when the expander
// declines the slot.
//
// No selection policy ships with this module; without an expander random
// slots are reported as unresolved and left out of the export.
type RandomSlotExpander interface {
	Expand(ctx context.Context, quiz *entity.QuizModule, slot entity.SlotResolution) (questionID uint, ok bool, err error)
}
