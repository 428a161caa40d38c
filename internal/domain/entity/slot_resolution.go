package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SlotResolution is one slot of a quiz together with the question version
// that applies to it. Question fields are nil when nothing resolved.
type SlotResolution struct {
	SlotID          uint            `gorm:"column:slotid" json:"slot_id"`
	SlotNumber      int             `gorm:"column:slot" json:"slot"`
	Page            int             `gorm:"column:page" json:"page"`
	MaxMark         decimal.Decimal `gorm:"column:maxmark" json:"max_mark"`
	RequirePrevious bool            `gorm:"column:requireprevious" json:"require_previous"`
	FilterCondition datatypes.JSON  `gorm:"-" json:"filter_condition,omitempty"`

	QuestionID          *uint   `gorm:"column:questionid" json:"question_id"`
	VersionID           *uint   `gorm:"column:versionid" json:"version_id"`
	Version             *int    `gorm:"column:version" json:"version"`
	RequestedVersion    *int    `gorm:"column:requestedversion" json:"requested_version"`
	Status              *string `gorm:"column:status" json:"status"`
	QuestionBankEntryID *uint   `gorm:"column:questionbankentryid" json:"question_bank_entry_id"`
	CategoryID          *uint   `gorm:"column:category" json:"category_id"`
	ContextID           *uint   `gorm:"column:contextid" json:"context_id"`
	QuestionsContextID  *uint   `gorm:"column:questionscontextid" json:"questions_context_id,omitempty"`
}

// HasQuestion reports whether the slot resolved to a concrete question.
func (r *SlotResolution) HasQuestion() bool {
	return r.QuestionID != nil && *r.QuestionID != 0
}

// IsRandom reports whether the slot draws its question from a filter.
func (r *SlotResolution) IsRandom() bool {
	return !r.HasQuestion() && len(r.FilterCondition) > 0
}

// IsPinned reports whether the slot asks for a specific version.
func (r *SlotResolution) IsPinned() bool {
	return r.RequestedVersion != nil
}

// CountResolvable возвращает число слотов с конкретным вопросом
func CountResolvable(rows []SlotResolution) int {
	n := 0
	for i := range rows {
		if rows[i].HasQuestion() {
			n++
		}
	}
	return n
}
