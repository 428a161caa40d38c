package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/domain/repository"
	"github.com/uofr/moodle-block-export-quiz/internal/format"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

// BlockQuiz is one entry of the block's quiz selector.
type BlockQuiz struct {
	QuizID         uint   `json:"quiz_id"`
	CourseModuleID uint   `json:"cmid"`
	Name           string `json:"name"`
	URL            string `json:"url"`
}

// BlockContent is what the course sidebar block renders.
type BlockContent struct {
	CourseID uint          `json:"course_id"`
	Quizzes  []BlockQuiz   `json:"quizzes"`
	Formats  []format.Info `json:"formats"`
}

// BlockService строит содержимое блока экспорта на странице курса
type BlockService struct {
	courseRepo repository.CourseRepository
	slotRepo   repository.SlotRepository
	formats    *format.Registry
	exportPath string
}

// NewBlockService создает новый сервис блока. exportPath - путь эндпоинта скачивания.
func NewBlockService(
	courseRepo repository.CourseRepository,
	slotRepo repository.SlotRepository,
	formats *format.Registry,
	exportPath string,
) *BlockService {
	return &BlockService{
		courseRepo: courseRepo,
		slotRepo:   slotRepo,
		formats:    formats,
		exportPath: exportPath,
	}
}

// GetContent lists the quizzes of the course that the user can see and that
// have at least one resolvable question, each with its download link.
func (s *BlockService) GetContent(ctx context.Context, courseID uint, requester entity.Requester) (*BlockContent, error) {
	if courseID == 0 {
		return nil, fmt.Errorf("missingcourseorcmid: %w", apperrors.ErrConfiguration)
	}
	if !requester.CanAccessCourse(courseID) {
		return nil, fmt.Errorf("user %d is not logged into course #%d: %w", requester.UserID, courseID, apperrors.ErrForbidden)
	}

	modules, err := s.courseRepo.GetQuizModules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	content := &BlockContent{
		CourseID: courseID,
		Quizzes:  []BlockQuiz{},
		Formats:  s.formats.Describe(),
	}
	if len(modules) == 0 {
		return content, nil
	}

	quizIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		quizIDs = append(quizIDs, m.QuizID)
	}
	withQuestions, err := s.slotRepo.QuizzesWithQuestions(ctx, quizIDs)
	if err != nil {
		return nil, err
	}
	valid := make(map[uint]bool, len(withQuestions))
	for _, id := range withQuestions {
		valid[id] = true
	}

	for i := range modules {
		m := &modules[i]
		if !requester.CanSee(m) || !valid[m.QuizID] {
			continue
		}
		content.Quizzes = append(content.Quizzes, BlockQuiz{
			QuizID:         m.QuizID,
			CourseModuleID: m.CourseModuleID,
			Name:           m.Name,
			URL:            s.ExportLink(courseID, m.QuizID, requester.Sesskey),
		})
	}
	return content, nil
}

// ExportLink builds the download link for a quiz, without a format.
func (s *BlockService) ExportLink(courseID, quizID uint, sesskey string) string {
	q := url.Values{}
	q.Set("courseid", strconv.FormatUint(uint64(courseID), 10))
	q.Set("id", strconv.FormatUint(uint64(quizID), 10))
	q.Set("sesskey", sesskey)
	return s.exportPath + "?" + q.Encode()
}

// DownloadURL appends the chosen format to a quiz link from the block form.
// The link must point at the export endpoint and the format must be registered.
func (s *BlockService) DownloadURL(link, formatName string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid quiz link: %w", apperrors.ErrValidation)
	}
	if u.Path != s.exportPath || u.IsAbs() || u.Host != "" {
		return "", fmt.Errorf("quiz link does not point at the export endpoint: %w", apperrors.ErrValidation)
	}
	if !s.formats.Has(formatName) {
		return "", fmt.Errorf("unknown format %q: %w", formatName, apperrors.ErrNotFound)
	}
	q := u.Query()
	q.Set("format", formatName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
