// Package export builds the downloadable XLSX workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// book wraps an excelize file whose sheets all share one header style.
type book struct {
	f           *excelize.File
	headerStyle int
	sheets      int
}

func newBook() (*book, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &book{f: f, headerStyle: style}, nil
}

func (b *book) addSheet(name string, header []string, rows [][]interface{}) error {
	if _, err := b.f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	b.sheets++

	hdr := make([]interface{}, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := b.f.SetSheetRow(name, "A1", &hdr); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(name, "A1", last, b.headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := b.f.SetColWidth(name, "A", lastCol, 18); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := b.f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, name, err)
		}
	}
	return nil
}

// bytes drops the default sheet and serialises the workbook.
func (b *book) bytes() ([]byte, error) {
	defer b.f.Close()
	if b.sheets > 0 {
		if err := b.f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
		b.f.SetActiveSheet(0)
	}
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
