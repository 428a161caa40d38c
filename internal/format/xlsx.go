package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Questions"

// XLSXEncoder пишет вопросы в книгу Excel через StreamWriter
type XLSXEncoder struct {
	base
}

// NewXLSXEncoder returns an Excel encoder.
func NewXLSXEncoder() Encoder { return &XLSXEncoder{} }

func (e *XLSXEncoder) Process(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(tableHeader)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, q := range e.questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, toCells(tableRow(q))); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXEncoder) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXEncoder) FileExtension() string { return ".xlsx" }

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
