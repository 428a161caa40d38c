package postgres

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// newTestDB создает схему хоста в памяти с префиксом mdl_
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "mdl_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Course{},
		&entity.Module{},
		&entity.CourseModule{},
		&entity.Context{},
		&entity.Quiz{},
		&entity.QuizSlot{},
		&entity.QuestionCategory{},
		&entity.QuestionBankEntry{},
		&entity.Question{},
		&entity.QuestionVersion{},
		&entity.QuestionAnswer{},
		&entity.QuestionReference{},
		&entity.QuestionSetReference{},
	))
	return db
}

// fixture заполняет схему хоста тестовыми данными
type fixture struct {
	t        *testing.T
	db       *gorm.DB
	quizMod  entity.Module
	category entity.QuestionCategory
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	f := &fixture{t: t, db: db}

	f.quizMod = entity.Module{Name: entity.ModuleNameQuiz}
	f.create(&entity.Module{Name: "forum"})
	f.create(&f.quizMod)

	courseCtx := entity.Context{ContextLevel: entity.ContextLevelCourse, InstanceID: 1}
	f.create(&courseCtx)
	f.category = entity.QuestionCategory{Name: "Default for course", ContextID: courseCtx.ID}
	f.create(&f.category)
	return f
}

func (f *fixture) create(value interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(value).Error)
}

// addQuiz создает викторину с модулем курса и контекстом
func (f *fixture) addQuiz(courseID uint, name string, visible bool) entity.QuizModule {
	quiz := entity.Quiz{CourseID: courseID, Name: name}
	f.create(&quiz)

	cm := entity.CourseModule{CourseID: courseID, ModuleID: f.quizMod.ID, Instance: quiz.ID, Visible: visible}
	f.create(&cm)

	ctx := entity.Context{ContextLevel: entity.ContextLevelModule, InstanceID: cm.ID}
	f.create(&ctx)

	return entity.QuizModule{
		CourseModuleID: cm.ID,
		QuizID:         quiz.ID,
		CourseID:       courseID,
		Name:           name,
		Visible:        visible,
		ContextID:      ctx.ID,
	}
}

// addEntry создает запись банка вопросов с версиями в указанных статусах.
// Возвращает ID записи и ID вопросов по номерам версий.
func (f *fixture) addEntry(statuses ...string) (uint, map[int]uint) {
	entry := entity.QuestionBankEntry{QuestionCategoryID: f.category.ID}
	f.create(&entry)

	questions := make(map[int]uint, len(statuses))
	for i, status := range statuses {
		version := i + 1
		q := entity.Question{
			Name:         fmt.Sprintf("Entry %d v%d", entry.ID, version),
			QuestionText: fmt.Sprintf("Text of v%d", version),
			QType:        "multichoice",
		}
		f.create(&q)
		f.create(&entity.QuestionVersion{
			QuestionBankEntryID: entry.ID,
			Version:             version,
			QuestionID:          q.ID,
			Status:              status,
		})
		questions[version] = q.ID
	}
	return entry.ID, questions
}

// addSlot добавляет слот со ссылкой на запись банка; version nil - последняя готовая
func (f *fixture) addSlot(m entity.QuizModule, number int, entryID uint, version *int) entity.QuizSlot {
	slot := f.addEmptySlot(m, number)
	f.create(&entity.QuestionReference{
		UsingContextID:      m.ContextID,
		Component:           entity.ReferenceComponentQuiz,
		QuestionArea:        entity.ReferenceAreaSlot,
		ItemID:              slot.ID,
		QuestionBankEntryID: entryID,
		Version:             version,
	})
	return slot
}

// addRandomSlot добавляет слот со ссылкой на набор вопросов
func (f *fixture) addRandomSlot(m entity.QuizModule, number int, questionsContextID uint) entity.QuizSlot {
	slot := f.addEmptySlot(m, number)
	f.create(&entity.QuestionSetReference{
		UsingContextID:     m.ContextID,
		Component:          entity.ReferenceComponentQuiz,
		QuestionArea:       entity.ReferenceAreaSlot,
		ItemID:             slot.ID,
		QuestionsContextID: questionsContextID,
		FilterCondition:    datatypes.JSON(fmt.Sprintf(`{"questioncategoryid":%d,"includingsubcategories":0}`, f.category.ID)),
	})
	return slot
}

func (f *fixture) addEmptySlot(m entity.QuizModule, number int) entity.QuizSlot {
	slot := entity.QuizSlot{
		Slot:    number,
		QuizID:  m.QuizID,
		Page:    (number + 1) / 2,
		MaxMark: decimal.NewFromInt(int64(number)),
	}
	f.create(&slot)
	return slot
}

func intPtr(v int) *int { return &v }

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }
