package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	headerFill      = "EDF2AC"
	headerRowHeight = 20
	groupColWidth   = 25
)

var fixedWidths = []float64{3, 20, 10, 10}

// WriteXLSX renders the table as a single-sheet workbook
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	width := len(t.Header)
	for i, cw := range fixedWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, cw); err != nil {
			return err
		}
	}
	if width > len(fixedWidths) {
		first, _ := excelize.ColumnNumberToName(len(fixedWidths) + 1)
		last, _ := excelize.ColumnNumberToName(width)
		if err := f.SetColWidth(sheet, first, last, groupColWidth); err != nil {
			return err
		}
	}
	if err := f.SetRowHeight(sheet, 1, headerRowHeight); err != nil {
		return err
	}

	// header row
	for col, label := range t.Header {
		if label == "" {
			continue
		}
		if err := f.SetCellValue(sheet, cellName(col, 1), label); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cellName(0, 1), cellName(width-1, 1), headerStyle); err != nil {
		return err
	}
	for _, g := range t.Groups {
		if g.Last > g.First {
			if err := f.MergeCell(sheet, cellName(g.First, 1), cellName(g.Last, 1)); err != nil {
				return fmt.Errorf("failed to merge %s header: %w", g.Label, err)
			}
		}
	}

	// data rows
	for r, row := range t.Rows {
		excelRow := r + 2
		for col, value := range row {
			if value == nil {
				continue
			}
			if err := f.SetCellValue(sheet, cellName(col, excelRow), value); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, cellName(0, excelRow), cellName(width-1, excelRow), cellStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellName converts a 0-based column and 1-based row into an A1 reference
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
