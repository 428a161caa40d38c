package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm/schema"
)

// Статусы версий вопросов
const (
	QuestionStatusReady  = "ready"
	QuestionStatusHidden = "hidden"
	QuestionStatusDraft  = "draft"
)

// Ссылки из слотов викторины
const (
	ReferenceComponentQuiz = "mod_quiz"
	ReferenceAreaSlot      = "slot"
)

// QuestionReference binds a slot to a question bank entry.
// A nil Version means "latest ready version".
type QuestionReference struct {
	ID                  uint   `gorm:"primaryKey;column:id" json:"id"`
	UsingContextID      uint   `gorm:"column:usingcontextid;not null;index" json:"usingcontextid"`
	Component           string `gorm:"column:component;size:100" json:"component"`
	QuestionArea        string `gorm:"column:questionarea;size:50" json:"questionarea"`
	ItemID              uint   `gorm:"column:itemid" json:"itemid"`
	QuestionBankEntryID uint   `gorm:"column:questionbankentryid;not null;index" json:"questionbankentryid"`
	Version             *int   `gorm:"column:version" json:"version,omitempty"`
}

func (QuestionReference) TableName(namer schema.Namer) string {
	return namer.TableName("question_references")
}

// QuestionSetReference binds a slot to a question filter (random questions).
type QuestionSetReference struct {
	ID                 uint           `gorm:"primaryKey;column:id" json:"id"`
	UsingContextID     uint           `gorm:"column:usingcontextid;not null;index" json:"usingcontextid"`
	Component          string         `gorm:"column:component;size:100" json:"component"`
	QuestionArea       string         `gorm:"column:questionarea;size:50" json:"questionarea"`
	ItemID             uint           `gorm:"column:itemid" json:"itemid"`
	QuestionsContextID uint           `gorm:"column:questionscontextid;not null" json:"questionscontextid"`
	FilterCondition    datatypes.JSON `gorm:"column:filtercondition" json:"filtercondition"`
}

func (QuestionSetReference) TableName(namer schema.Namer) string {
	return namer.TableName("question_set_references")
}

// QuestionBankEntry is the stable identity of a question across edits.
type QuestionBankEntry struct {
	ID                 uint    `gorm:"primaryKey;column:id" json:"id"`
	QuestionCategoryID uint    `gorm:"column:questioncategoryid;not null;index" json:"questioncategoryid"`
	IDNumber           *string `gorm:"column:idnumber;size:100" json:"idnumber,omitempty"`
	OwnerID            *uint   `gorm:"column:ownerid" json:"ownerid,omitempty"`
}

func (QuestionBankEntry) TableName(namer schema.Namer) string {
	return namer.TableName("question_bank_entries")
}

// QuestionVersion is an immutable snapshot of an entry.
type QuestionVersion struct {
	ID                  uint   `gorm:"primaryKey;column:id" json:"id"`
	QuestionBankEntryID uint   `gorm:"column:questionbankentryid;not null;index" json:"questionbankentryid"`
	Version             int    `gorm:"column:version;not null;default:1" json:"version"`
	QuestionID          uint   `gorm:"column:questionid;not null;index" json:"questionid"`
	Status              string `gorm:"column:status;size:10;not null;default:'ready'" json:"status"`
}

func (QuestionVersion) TableName(namer schema.Namer) string {
	return namer.TableName("question_versions")
}

// IsReady проверяет, доступна ли версия для выбора "последней"
func (v *QuestionVersion) IsReady() bool {
	return v.Status == QuestionStatusReady
}

// QuestionCategory группирует записи банка вопросов
type QuestionCategory struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	Name      string `gorm:"column:name;size:255;not null" json:"name"`
	ContextID uint   `gorm:"column:contextid;not null" json:"contextid"`
	Info      string `gorm:"column:info;not null;default:''" json:"info"`
	Parent    uint   `gorm:"column:parent;not null;default:0" json:"parent"`
}

func (QuestionCategory) TableName(namer schema.Namer) string {
	return namer.TableName("question_categories")
}

// Question is the content payload referenced by a version.
type Question struct {
	ID                 uint    `gorm:"primaryKey;column:id" json:"id"`
	Parent             uint    `gorm:"column:parent;not null;default:0" json:"parent"`
	Name               string  `gorm:"column:name;size:255;not null" json:"name"`
	QuestionText       string  `gorm:"column:questiontext;not null" json:"questiontext"`
	QuestionTextFormat int     `gorm:"column:questiontextformat;not null;default:0" json:"questiontextformat"`
	GeneralFeedback    string  `gorm:"column:generalfeedback;not null;default:''" json:"generalfeedback"`
	DefaultMark        float64 `gorm:"column:defaultmark;not null;default:1" json:"defaultmark"`
	Penalty            float64 `gorm:"column:penalty;not null;default:0.3333333" json:"penalty"`
	QType              string  `gorm:"column:qtype;size:20;not null" json:"qtype"`
	Length             int     `gorm:"column:length;not null;default:1" json:"length"`
	Stamp              string  `gorm:"column:stamp;size:255;not null;default:''" json:"stamp"`
	TimeCreated        int64   `gorm:"column:timecreated;not null;default:0" json:"timecreated"`
	TimeModified       int64   `gorm:"column:timemodified;not null;default:0" json:"timemodified"`
}

func (Question) TableName(namer schema.Namer) string {
	return namer.TableName("question")
}

// QuestionAnswer is one answer option of a question.
type QuestionAnswer struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	QuestionID   uint    `gorm:"column:question;not null;index" json:"question"`
	Answer       string  `gorm:"column:answer;not null" json:"answer"`
	AnswerFormat int     `gorm:"column:answerformat;not null;default:0" json:"answerformat"`
	Fraction     float64 `gorm:"column:fraction;not null;default:0" json:"fraction"`
	Feedback     string  `gorm:"column:feedback;not null;default:''" json:"feedback"`
}

func (QuestionAnswer) TableName(namer schema.Namer) string {
	return namer.TableName("question_answers")
}

// IsCorrect reports whether the answer carries full credit.
func (a *QuestionAnswer) IsCorrect() bool {
	return a.Fraction >= 1
}
