package entity

import "github.com/shopspring/decimal"

// QuestionData is the full payload of one exported question.
type QuestionData struct {
	Question
	Answers []QuestionAnswer `json:"answers"`

	// Данные слота и версии, из которых вопрос был получен
	SlotNumber          int             `json:"slot"`
	MaxMark             decimal.Decimal `json:"max_mark"`
	Version             int             `json:"version"`
	QuestionBankEntryID uint            `json:"question_bank_entry_id"`
	CategoryID          uint            `json:"category_id"`
	CategoryName        string          `json:"category_name,omitempty"`
	ContextID           uint            `json:"context_id"`
	Random              bool            `json:"random,omitempty"`
}

// CorrectAnswers returns the answers with full credit.
func (q *QuestionData) CorrectAnswers() []QuestionAnswer {
	var out []QuestionAnswer
	for _, a := range q.Answers {
		if a.IsCorrect() {
			out = append(out, a)
		}
	}
	return out
}
