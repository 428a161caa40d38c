package format

import (
	"bytes"
	"context"
	"encoding/csv"
)

// CSVEncoder пишет вопросы в CSV с BOM для корректного открытия в Excel
type CSVEncoder struct {
	base
}

// NewCSVEncoder returns a CSV encoder.
func NewCSVEncoder() Encoder { return &CSVEncoder{} }

func (e *CSVEncoder) Process(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(tableHeader); err != nil {
		return nil, err
	}
	for _, q := range e.questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.Write(csvRow(tableRow(q))); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *CSVEncoder) MimeType() string { return "text/csv; charset=utf-8" }

func (e *CSVEncoder) FileExtension() string { return ".csv" }
