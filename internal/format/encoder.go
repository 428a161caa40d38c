// Package format holds the registry of question export encoders.
//
// An Encoder is constructed per export from its Factory, so encoders may keep
// state between SetQuestions and Process without synchronisation.
package format

import (
	"context"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// Context describes where the exported questions come from.
type Context struct {
	CourseID      uint
	QuizID        uint
	QuizName      string
	QuizContextID uint
	// CategoryToFile и ContextToFile управляют записью категорий в файл.
	// Экспорт викторины всегда выключает оба флага.
	CategoryToFile bool
	ContextToFile  bool
}

// Encoder serializes resolved question payloads into one file format.
type Encoder interface {
	SetContext(ec Context)
	SetQuestions(questions []entity.QuestionData)
	// Preprocess returns an error when the export cannot start.
	Preprocess() error
	// Process builds the whole file in memory.
	Process(ctx context.Context) ([]byte, error)
	MimeType() string
	FileExtension() string
}

// Factory creates a fresh encoder.
type Factory func() Encoder

// FileName returns the download name for a quiz: quiz name followed by the
// encoder's extension.
func FileName(quizName string, enc Encoder) string {
	return quizName + enc.FileExtension()
}

// base хранит общее состояние встроенных кодировщиков
type base struct {
	ec        Context
	questions []entity.QuestionData
}

func (b *base) SetContext(ec Context) { b.ec = ec }

func (b *base) SetQuestions(questions []entity.QuestionData) { b.questions = questions }

func (b *base) Preprocess() error {
	if len(b.questions) == 0 {
		return errNoQuestions
	}
	return nil
}
