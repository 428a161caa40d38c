package format

import (
	"context"
	"encoding/json"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

type jsonDocument struct {
	Quiz      string                `json:"quiz"`
	QuizID    uint                  `json:"quiz_id"`
	CourseID  uint                  `json:"course_id"`
	Questions []entity.QuestionData `json:"questions"`
}

// JSONEncoder пишет вопросы одним JSON документом
type JSONEncoder struct {
	base
}

// NewJSONEncoder returns a JSON encoder.
func NewJSONEncoder() Encoder { return &JSONEncoder{} }

func (e *JSONEncoder) Process(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(jsonDocument{
		Quiz:      e.ec.QuizName,
		QuizID:    e.ec.QuizID,
		CourseID:  e.ec.CourseID,
		Questions: e.questions,
	}, "", "  ")
}

func (e *JSONEncoder) MimeType() string { return "application/json" }

func (e *JSONEncoder) FileExtension() string { return ".json" }
