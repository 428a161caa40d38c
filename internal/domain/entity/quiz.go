package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

// Quiz представляет экземпляр модуля викторины
type Quiz struct {
	ID           uint   `gorm:"primaryKey;column:id" json:"id"`
	CourseID     uint   `gorm:"column:course;not null;index" json:"course"`
	Name         string `gorm:"column:name;size:1333;not null" json:"name"`
	TimeModified int64  `gorm:"column:timemodified;not null;default:0" json:"timemodified"`
}

// TableName returns the prefixed host table name.
func (Quiz) TableName(namer schema.Namer) string {
	return namer.TableName("quiz")
}

// QuizSlot is one position of a quiz.
type QuizSlot struct {
	ID              uint            `gorm:"primaryKey;column:id" json:"id"`
	Slot            int             `gorm:"column:slot;not null" json:"slot"`
	QuizID          uint            `gorm:"column:quizid;not null;index" json:"quizid"`
	Page            int             `gorm:"column:page;not null" json:"page"`
	RequirePrevious bool            `gorm:"column:requireprevious;not null;default:false" json:"requireprevious"`
	MaxMark         decimal.Decimal `gorm:"column:maxmark;type:numeric(12,7);not null" json:"maxmark"`
}

func (QuizSlot) TableName(namer schema.Namer) string {
	return namer.TableName("quiz_slots")
}

// QuizModule is a quiz instance as seen from its course, with the data the
// block and the download endpoint need.
type QuizModule struct {
	CourseModuleID uint   `gorm:"column:cmid" json:"cmid"`
	QuizID         uint   `gorm:"column:quizid" json:"quiz_id"`
	CourseID       uint   `gorm:"column:courseid" json:"course_id"`
	Name           string `gorm:"column:name" json:"name"`
	Visible        bool   `gorm:"column:visible" json:"visible"`
	ContextID      uint   `gorm:"column:contextid" json:"context_id"`
}
