package entity

import "gorm.io/gorm/schema"

// Уровни контекста хоста
const (
	ContextLevelSystem = 10
	ContextLevelCourse = 50
	ContextLevelModule = 70
)

// ModuleNameQuiz имя модуля викторины в таблице modules
const ModuleNameQuiz = "quiz"

// Course is a host course.
type Course struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	FullName  string `gorm:"column:fullname;size:254;not null;default:''" json:"fullname"`
	ShortName string `gorm:"column:shortname;size:255;not null;default:''" json:"shortname"`
	Visible   bool   `gorm:"column:visible;not null" json:"visible"`
}

// TableName returns the prefixed host table name.
func (Course) TableName(namer schema.Namer) string {
	return namer.TableName("course")
}

// Module is a registered activity module type (quiz, forum, ...).
type Module struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;size:20;not null;index" json:"name"`
}

func (Module) TableName(namer schema.Namer) string {
	return namer.TableName("modules")
}

// CourseModule links an activity instance to a course.
type CourseModule struct {
	ID                 uint `gorm:"primaryKey;column:id" json:"id"`
	CourseID           uint `gorm:"column:course;not null;index" json:"course"`
	ModuleID           uint `gorm:"column:module;not null" json:"module"`
	Instance           uint `gorm:"column:instance;not null" json:"instance"`
	Visible            bool `gorm:"column:visible;not null" json:"visible"`
	DeletionInProgress bool `gorm:"column:deletioninprogress;not null;default:false" json:"deletioninprogress"`
}

func (CourseModule) TableName(namer schema.Namer) string {
	return namer.TableName("course_modules")
}

// Context is a node of the host context tree.
type Context struct {
	ID           uint `gorm:"primaryKey;column:id" json:"id"`
	ContextLevel int  `gorm:"column:contextlevel;not null" json:"contextlevel"`
	InstanceID   uint `gorm:"column:instanceid;not null" json:"instanceid"`
}

func (Context) TableName(namer schema.Namer) string {
	return namer.TableName("context")
}
