package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/domain/repository"
	"github.com/uofr/moodle-block-export-quiz/internal/format"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

// ExportRequest описывает один запрос на экспорт викторины
type ExportRequest struct {
	CourseID  uint
	QuizID    uint
	Format    string
	Requester entity.Requester
}

// LoadFailure records a slot whose question payload could not be loaded.
// The export continues without it.
type LoadFailure struct {
	SlotNumber int
	QuestionID uint
	Err        error
}

func (f LoadFailure) Error() string {
	return fmt.Sprintf("slot %d (question #%d): %v", f.SlotNumber, f.QuestionID, f.Err)
}

// ExportResult is a fully generated export file.
type ExportResult struct {
	FileName string
	MimeType string
	Content  []byte
	QuizName string
	Exported int
	// Skipped содержит слоты, вопросы которых не удалось загрузить
	Skipped []LoadFailure
	// Unresolved содержит номера слотов без конкретного вопроса
	Unresolved []int
}

// ExportService собирает вопросы викторины и передает их кодировщику формата
type ExportService struct {
	courseRepo   repository.CourseRepository
	questionRepo repository.QuestionRepository
	resolver     *SlotResolver
	formats      *format.Registry
	expander     RandomSlotExpander
}

// NewExportService создает новый сервис экспорта
func NewExportService(
	courseRepo repository.CourseRepository,
	slotRepo repository.SlotRepository,
	questionRepo repository.QuestionRepository,
	formats *format.Registry,
) *ExportService {
	return &ExportService{
		courseRepo:   courseRepo,
		questionRepo: questionRepo,
		resolver:     NewSlotResolver(courseRepo, slotRepo),
		formats:      formats,
	}
}

// SetRandomSlotExpander plugs in the policy for random slots.
func (s *ExportService) SetRandomSlotExpander(expander RandomSlotExpander) {
	s.expander = expander
}

// Resolver возвращает резолвер слотов, используемый сервисом
func (s *ExportService) Resolver() *SlotResolver {
	return s.resolver
}

// Export runs one quiz export. Validation and access errors are returned
// before any question data is read; an empty question set fails with
// apperrors.ErrEmptyResult without calling the encoder.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if req.CourseID == 0 {
		return nil, fmt.Errorf("missingcourseorcmid: %w", apperrors.ErrConfiguration)
	}
	if !req.Requester.CanAccessCourse(req.CourseID) {
		return nil, fmt.Errorf("user %d is not logged into course #%d: %w", req.Requester.UserID, req.CourseID, apperrors.ErrForbidden)
	}

	encoder, err := s.formats.Lookup(req.Format)
	if err != nil {
		return nil, err
	}

	module, err := s.courseRepo.GetQuizModule(ctx, req.CourseID, req.QuizID)
	if err != nil {
		return nil, fmt.Errorf("quiz #%d in course #%d: %w", req.QuizID, req.CourseID, err)
	}
	if !req.Requester.CanSee(module) {
		return nil, fmt.Errorf("noaccess: quiz #%d: %w", req.QuizID, apperrors.ErrForbidden)
	}

	slots, err := s.resolver.ResolveModule(ctx, module)
	if err != nil {
		return nil, err
	}

	questions, skipped, unresolved := s.loadQuestions(ctx, module, slots)
	if len(questions) == 0 {
		log.Printf("[ExportService] Quiz #%d has no exportable questions (%d slots, %d skipped, %d unresolved)",
			module.QuizID, len(slots), len(skipped), len(unresolved))
		return nil, fmt.Errorf("quiz #%d: %w", module.QuizID, apperrors.ErrEmptyResult)
	}

	encoder.SetContext(format.Context{
		CourseID:      req.CourseID,
		QuizID:        module.QuizID,
		QuizName:      module.Name,
		QuizContextID: module.ContextID,
	})
	encoder.SetQuestions(questions)

	if err := encoder.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocess %s: %w: %v", req.Format, apperrors.ErrEncoding, err)
	}
	content, err := encoder.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w: %v", req.Format, apperrors.ErrEncoding, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("process %s: empty output: %w", req.Format, apperrors.ErrEncoding)
	}

	log.Printf("[ExportService] Exported quiz #%d as %s for user %d: %d questions, %d skipped",
		module.QuizID, req.Format, req.Requester.UserID, len(questions), len(skipped))

	return &ExportResult{
		FileName:   format.FileName(module.Name, encoder),
		MimeType:   encoder.MimeType(),
		Content:    content,
		QuizName:   module.Name,
		Exported:   len(questions),
		Skipped:    skipped,
		Unresolved: unresolved,
	}, nil
}

// loadQuestions загружает вопросы в порядке слотов. Ошибка загрузки одного
// вопроса не прерывает экспорт.
func (s *ExportService) loadQuestions(
	ctx context.Context,
	module *entity.QuizModule,
	slots []entity.SlotResolution,
) ([]entity.QuestionData, []LoadFailure, []int) {
	questions := make([]entity.QuestionData, 0, len(slots))
	var skipped []LoadFailure
	var unresolved []int

	for _, slot := range slots {
		questionID, random, ok := s.slotQuestion(ctx, module, slot)
		if !ok {
			unresolved = append(unresolved, slot.SlotNumber)
			continue
		}

		data, err := s.questionRepo.LoadQuestionData(ctx, questionID)
		if err != nil {
			failure := LoadFailure{SlotNumber: slot.SlotNumber, QuestionID: questionID, Err: err}
			log.Printf("[ExportService] Skipping %v", failure)
			skipped = append(skipped, failure)
			continue
		}

		data.SlotNumber = slot.SlotNumber
		data.MaxMark = slot.MaxMark
		data.Random = random
		questions = append(questions, *data)
	}
	return questions, skipped, unresolved
}

// slotQuestion возвращает ID вопроса для слота: закрепленный резолвером или
// выбранный экспандером для случайного слота
func (s *ExportService) slotQuestion(ctx context.Context, module *entity.QuizModule, slot entity.SlotResolution) (uint, bool, bool) {
	if slot.HasQuestion() {
		return *slot.QuestionID, false, true
	}
	if !slot.IsRandom() || s.expander == nil {
		return 0, false, false
	}

	questionID, ok, err := s.expander.Expand(ctx, module, slot)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ExportService] Random slot %d of quiz #%d not expanded: %v", slot.SlotNumber, module.QuizID, err)
		}
		return 0, true, false
	}
	if !ok || questionID == 0 {
		return 0, true, false
	}
	return questionID, true, true
}
