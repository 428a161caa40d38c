package format

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	apperrors "github.com/uofr/moodle-block-export-quiz/internal/pkg/errors"
)

func sampleQuestions() []entity.QuestionData {
	return []entity.QuestionData{
		{
			Question:     entity.Question{ID: 11, Name: "Capital", QType: "multichoice", QuestionText: "Capital of France?"},
			Answers:      []entity.QuestionAnswer{{Answer: "Paris", Fraction: 1}, {Answer: "Lyon"}},
			SlotNumber:   1,
			MaxMark:      decimal.RequireFromString("2.5"),
			Version:      3,
			CategoryName: "Geography",
		},
		{
			Question:   entity.Question{ID: 12, Name: "=SUM(A1)", QType: "shortanswer", QuestionText: "Formula?"},
			Answers:    []entity.QuestionAnswer{{Answer: "-1", Fraction: 1}},
			SlotNumber: 2,
			MaxMark:    decimal.NewFromInt(1),
			Version:    1,
		},
	}
}

func runEncoder(t *testing.T, enc Encoder, questions []entity.QuestionData) []byte {
	t.Helper()
	enc.SetContext(Context{CourseID: 3, QuizID: 7, QuizName: "Midterm"})
	enc.SetQuestions(questions)
	require.NoError(t, enc.Preprocess())
	out, err := enc.Process(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	return out
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	enc, err := r.Lookup("csv")
	require.NoError(t, err)
	assert.Equal(t, ".csv", enc.FileExtension())

	// Каждый вызов создает новый кодировщик
	other, err := r.Lookup("csv")
	require.NoError(t, err)
	assert.NotSame(t, enc, other)

	_, err = r.Lookup("gift")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("json", NewJSONEncoder))
	assert.ErrorIs(t, r.Register("json", NewJSONEncoder), apperrors.ErrValidation)
	assert.ErrorIs(t, r.Register("../evil", NewJSONEncoder), apperrors.ErrValidation)
	assert.ErrorIs(t, r.Register("xml", nil), apperrors.ErrValidation)
	assert.True(t, r.Has("json"))
	assert.False(t, r.Has("xml"))
}

func TestRegistry_NamesAndDescribe(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"csv", "json", "xlsx"}, r.Names())

	infos := r.Describe()
	require.Len(t, infos, 3)
	assert.Equal(t, Info{Name: "json", Extension: ".json", MimeType: "application/json"}, infos[1])
}

func TestRegistry_Only(t *testing.T) {
	r := DefaultRegistry()

	all, err := r.Only(nil)
	require.NoError(t, err)
	assert.Equal(t, r.Names(), all.Names())

	subset, err := r.Only([]string{"xlsx", "json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "xlsx"}, subset.Names())

	_, err = r.Only([]string{"json", "gift"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileName(t *testing.T) {
	enc := NewXLSXEncoder()
	assert.Equal(t, "Midterm.xlsx", FileName("Midterm", enc))
}

func TestEncoders_PreprocessRejectsEmpty(t *testing.T) {
	for _, name := range DefaultRegistry().Names() {
		enc, err := DefaultRegistry().Lookup(name)
		require.NoError(t, err)
		enc.SetQuestions(nil)
		assert.Error(t, enc.Preprocess(), name)
	}
}

func TestJSONEncoder(t *testing.T) {
	out := runEncoder(t, NewJSONEncoder(), sampleQuestions())

	var doc struct {
		Quiz      string `json:"quiz"`
		QuizID    uint   `json:"quiz_id"`
		Questions []struct {
			ID      uint   `json:"id"`
			Slot    int    `json:"slot"`
			MaxMark string `json:"max_mark"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Midterm", doc.Quiz)
	assert.Equal(t, uint(7), doc.QuizID)
	require.Len(t, doc.Questions, 2)
	assert.Equal(t, uint(11), doc.Questions[0].ID)
	assert.Equal(t, 2, doc.Questions[1].Slot)
	assert.Equal(t, "2.5", doc.Questions[0].MaxMark)
}

func TestCSVEncoder(t *testing.T) {
	out := runEncoder(t, NewCSVEncoder(), sampleQuestions())

	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, tableHeader, records[0])
	assert.Equal(t, "Capital", records[1][1])
	assert.Equal(t, "Paris | Lyon", records[1][4])
	assert.Equal(t, "Paris", records[1][5])
	assert.Equal(t, "2.5", records[1][6])
	// Формулы экранируются
	assert.Equal(t, "'=SUM(A1)", records[2][1])
	assert.Equal(t, "'-1", records[2][5])
}

func TestXLSXEncoder(t *testing.T) {
	out := runEncoder(t, NewXLSXEncoder(), sampleQuestions())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Slot", rows[0][0])
	assert.Equal(t, "Capital", rows[1][1])
	assert.Equal(t, "Geography", rows[1][8])
	// Текстовые ячейки сохраняются как есть
	assert.Equal(t, "=SUM(A1)", rows[2][1])
	assert.Equal(t, "-1", rows[2][5])
}

func TestEncoders_ProcessHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enc := NewJSONEncoder()
	enc.SetQuestions(sampleQuestions())
	_, err := enc.Process(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
