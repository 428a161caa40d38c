package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

const questionBankSQL = `
SELECT qv.version,
       qv.questionbankentryid,
       qc.id AS categoryid,
       qc.name AS categoryname,
       qc.contextid
  FROM {question_versions} qv
  JOIN {question_bank_entries} qbe ON qbe.id = qv.questionbankentryid
  JOIN {question_categories} qc ON qc.id = qbe.questioncategoryid
 WHERE qv.questionid = ?`

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

type questionBankRow struct {
	Version             int    `gorm:"column:version"`
	QuestionBankEntryID uint   `gorm:"column:questionbankentryid"`
	CategoryID          uint   `gorm:"column:categoryid"`
	CategoryName        string `gorm:"column:categoryname"`
	ContextID           uint   `gorm:"column:contextid"`
}

// LoadQuestionData загружает вопрос вместе с ответами и категорией
func (r *QuestionRepo) LoadQuestionData(ctx context.Context, questionID uint) (*entity.QuestionData, error) {
	db := r.db.WithContext(ctx)

	var question entity.Question
	if err := db.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question #%d: %w", questionID, apperrors.ErrNotFound)
		}
		return nil, classifyError("load question", err)
	}

	var answers []entity.QuestionAnswer
	if err := db.Where("question = ?", questionID).Order("id").Find(&answers).Error; err != nil {
		return nil, classifyError("load answers", err)
	}

	var bank []questionBankRow
	if err := db.Raw(hostSQL(r.db, questionBankSQL), questionID).Scan(&bank).Error; err != nil {
		return nil, classifyError("load question bank entry", err)
	}
	if len(bank) == 0 {
		return nil, fmt.Errorf("question #%d has no bank entry: %w", questionID, apperrors.ErrNotFound)
	}

	return &entity.QuestionData{
		Question:            question,
		Answers:             answers,
		Version:             bank[0].Version,
		QuestionBankEntryID: bank[0].QuestionBankEntryID,
		CategoryID:          bank[0].CategoryID,
		CategoryName:        bank[0].CategoryName,
		ContextID:           bank[0].ContextID,
	}, nil
}
