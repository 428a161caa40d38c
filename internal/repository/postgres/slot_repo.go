package postgres

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
)

// resolveSlotsSQL выбирает для каждого слота либо закрепленную версию вопроса,
// либо последнюю версию со статусом ready. Последняя версия считается по записи
// банка вопросов, а не по слоту. Слоты без вопроса остаются в выборке с NULL.
const resolveSlotsSQL = `
SELECT slot.slot,
       slot.id AS slotid,
       slot.page,
       slot.maxmark,
       slot.requireprevious,
       qsr.filtercondition,
       qsr.questionscontextid,
       qv.status,
       qv.id AS versionid,
       qv.version,
       qr.version AS requestedversion,
       qv.questionbankentryid,
       q.id AS questionid,
       qc.id AS category,
       COALESCE(qc.contextid, qsr.questionscontextid) AS contextid
  FROM {quiz_slots} slot
  LEFT JOIN {question_references} qr ON qr.usingcontextid = @quizcontextid AND qr.component = 'mod_quiz'
                                    AND qr.questionarea = 'slot' AND qr.itemid = slot.id
  LEFT JOIN {question_bank_entries} qbe ON qbe.id = qr.questionbankentryid
  LEFT JOIN (
        SELECT lv.questionbankentryid, MAX(lv.version) AS version
          FROM {quiz_slots} lslot
          JOIN {question_references} lqr ON lqr.usingcontextid = @quizcontextid AND lqr.component = 'mod_quiz'
                                        AND lqr.questionarea = 'slot' AND lqr.itemid = lslot.id
          JOIN {question_versions} lv ON lv.questionbankentryid = lqr.questionbankentryid
         WHERE lslot.quizid = @quizid
           AND lqr.version IS NULL
           AND lv.status = 'ready'
         GROUP BY lv.questionbankentryid
       ) latestversions ON latestversions.questionbankentryid = qr.questionbankentryid
  LEFT JOIN {question_versions} qv ON qv.questionbankentryid = qbe.id
                                  AND qv.version = COALESCE(qr.version, latestversions.version)
  LEFT JOIN {question_categories} qc ON qc.id = qbe.questioncategoryid
  LEFT JOIN {question} q ON q.id = qv.questionid
  LEFT JOIN {question_set_references} qsr ON qsr.usingcontextid = @quizcontextid AND qsr.component = 'mod_quiz'
                                        AND qsr.questionarea = 'slot' AND qsr.itemid = slot.id
 WHERE slot.quizid = @quizid
 ORDER BY slot.slot`

// quizzesWithQuestionsSQL использует то же правило выбора версии, что и resolveSlotsSQL
const quizzesWithQuestionsSQL = `
SELECT DISTINCT slot.quizid
  FROM {quiz_slots} slot
  JOIN {question_references} qr ON qr.component = 'mod_quiz' AND qr.questionarea = 'slot' AND qr.itemid = slot.id
  JOIN {question_versions} qv ON qv.questionbankentryid = qr.questionbankentryid
 WHERE slot.quizid IN @quizids
   AND ((qr.version IS NOT NULL AND qv.version = qr.version)
        OR (qr.version IS NULL AND qv.version = (SELECT MAX(v.version)
                                                  FROM {question_versions} v
                                                 WHERE v.questionbankentryid = qr.questionbankentryid
                                                   AND v.status = 'ready')))
 ORDER BY slot.quizid`

// SlotRepo реализует repository.SlotRepository поверх схемы хоста
type SlotRepo struct {
	db *gorm.DB
}

// NewSlotRepo создает новый репозиторий слотов
func NewSlotRepo(db *gorm.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

type slotResolutionRow struct {
	entity.SlotResolution `gorm:"embedded"`
	FilterConditionRaw    *string `gorm:"column:filtercondition"`
}

// ResolveSlots возвращает по одной строке на каждый слот викторины в порядке номера слота
func (r *SlotRepo) ResolveSlots(ctx context.Context, quizID, quizContextID uint) ([]entity.SlotResolution, error) {
	var rows []slotResolutionRow
	err := r.db.WithContext(ctx).
		Raw(hostSQL(r.db, resolveSlotsSQL), map[string]interface{}{
			"quizid":        quizID,
			"quizcontextid": quizContextID,
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError("resolve slots", err)
	}

	resolved := make([]entity.SlotResolution, 0, len(rows))
	for _, row := range rows {
		res := row.SlotResolution
		if row.FilterConditionRaw != nil && *row.FilterConditionRaw != "" {
			res.FilterCondition = datatypes.JSON(*row.FilterConditionRaw)
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

// QuizzesWithQuestions возвращает викторины, у которых есть хотя бы один разрешимый вопрос
func (r *SlotRepo) QuizzesWithQuestions(ctx context.Context, quizIDs []uint) ([]uint, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Raw(hostSQL(r.db, quizzesWithQuestionsSQL), map[string]interface{}{"quizids": quizIDs}).
		Scan(&ids).Error
	if err != nil {
		return nil, classifyError("quizzes with questions", err)
	}
	return ids, nil
}
