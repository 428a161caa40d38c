package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/format"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockCourseRepo реализует repository.CourseRepository
type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) GetQuizModules(ctx context.Context, courseID uint) ([]entity.QuizModule, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizModule), args.Error(1)
}

func (m *MockCourseRepo) GetQuizModule(ctx context.Context, courseID, quizID uint) (*entity.QuizModule, error) {
	args := m.Called(ctx, courseID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizModule), args.Error(1)
}

func (m *MockCourseRepo) GetQuizModuleByQuizID(ctx context.Context, quizID uint) (*entity.QuizModule, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizModule), args.Error(1)
}

// MockSlotRepo реализует repository.SlotRepository
type MockSlotRepo struct {
	mock.Mock
}

func (m *MockSlotRepo) ResolveSlots(ctx context.Context, quizID, quizContextID uint) ([]entity.SlotResolution, error) {
	args := m.Called(ctx, quizID, quizContextID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SlotResolution), args.Error(1)
}

func (m *MockSlotRepo) QuizzesWithQuestions(ctx context.Context, quizIDs []uint) ([]uint, error) {
	args := m.Called(ctx, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) LoadQuestionData(ctx context.Context, questionID uint) (*entity.QuestionData, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuestionData), args.Error(1)
}

// MockExpander реализует RandomSlotExpander
type MockExpander struct {
	mock.Mock
}

func (m *MockExpander) Expand(ctx context.Context, quiz *entity.QuizModule, slot entity.SlotResolution) (uint, bool, error) {
	args := m.Called(ctx, quiz, slot)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

// ============================================================================
// Кодировщик-шпион
// ============================================================================

// spyEncoder записывает вызовы и возвращает заданный результат
type spyEncoder struct {
	ext        string
	output     []byte
	processErr error

	contextCalls  int
	questionCalls int
	processCalls  int
	ec            format.Context
	questions     []entity.QuestionData
}

func (s *spyEncoder) SetContext(ec format.Context) {
	s.contextCalls++
	s.ec = ec
}

func (s *spyEncoder) SetQuestions(questions []entity.QuestionData) {
	s.questionCalls++
	s.questions = questions
}

func (s *spyEncoder) Preprocess() error { return nil }

func (s *spyEncoder) Process(ctx context.Context) ([]byte, error) {
	s.processCalls++
	return s.output, s.processErr
}

func (s *spyEncoder) MimeType() string { return "application/xml" }

func (s *spyEncoder) FileExtension() string { return s.ext }

func (s *spyEncoder) calls() int { return s.contextCalls + s.questionCalls + s.processCalls }

// registryWith возвращает реестр с одним форматом "xml", всегда отдающим spy
func registryWith(spy *spyEncoder) *format.Registry {
	r := format.NewRegistry()
	r.MustRegister("xml", func() format.Encoder { return spy })
	return r
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }
