package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/clientview/internal/core"
)

// SheetName is the worksheet holding the report.
const SheetName = "Report"

// WriteXLSX writes r as a workbook with a single "Report" sheet: the title,
// a blank row, then for each histogram a title row, a Category/Count header,
// one row per bucket and a blank row.
func WriteXLSX(w io.Writer, r core.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	sw := &sheetWriter{f: f, row: 1}
	sw.set(1, ReportTitle, title)
	sw.next()
	sw.set(1, subtitle(r), 0)
	sw.next()
	sw.next()

	for _, h := range r.Histograms {
		sw.set(1, h.Title, bold)
		sw.next()
		sw.set(1, "Category", bold)
		sw.set(2, "Count", bold)
		sw.next()
		for _, b := range h.Buckets {
			sw.set(1, b.Label, 0)
			sw.set(2, b.Count, 0)
			sw.next()
		}
		sw.next()
	}
	if sw.err != nil {
		return fmt.Errorf("write cells: %w", sw.err)
	}

	if err := f.SetColWidth(SheetName, "A", "A", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetWriter fills the report sheet row by row, keeping the first error.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (s *sheetWriter) set(col int, value any, style int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellValue(SheetName, cell, value); err != nil {
		s.err = err
		return
	}
	if style != 0 {
		s.err = s.f.SetCellStyle(SheetName, cell, cell, style)
	}
}

func (s *sheetWriter) next() { s.row++ }
