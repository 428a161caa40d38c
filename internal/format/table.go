package format

import (
	"strconv"
	"strings"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// Заголовки табличных форматов
var tableHeader = []string{"Slot", "Name", "Type", "Question", "Answers", "Correct", "Max mark", "Version", "Category"}

// tableRow разворачивает вопрос в строку таблицы
func tableRow(q entity.QuestionData) []string {
	answers := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, a.Answer)
	}
	correct := make([]string, 0, 1)
	for _, a := range q.CorrectAnswers() {
		correct = append(correct, a.Answer)
	}
	return []string{
		strconv.Itoa(q.SlotNumber),
		q.Name,
		q.QType,
		q.QuestionText,
		strings.Join(answers, " | "),
		strings.Join(correct, " | "),
		q.MaxMark.String(),
		strconv.Itoa(q.Version),
		q.CategoryName,
	}
}

// csvRow экранирует ячейки строки для защиты от formula injection в CSV.
// В xlsx строки пишутся текстовыми ячейками и не вычисляются.
func csvRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = sanitizeCell(cell)
	}
	return out
}

func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
