package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/JonMunkholm/clientview/internal/core"
)

// WritePDF writes r as an A4 document with one table per histogram.
func WritePDF(w io.Writer, r core.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	pdf.SetAuthor("clientview", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(ReportTitle), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(subtitle(r)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	const labelWidth, countWidth = 120.0, 50.0
	for _, h := range r.Histograms {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(h.Title), "", 1, "L", false, 0, "")

		pdf.SetFillColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, 7, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(countWidth, 7, "Count", "1", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, b := range h.Buckets {
			pdf.CellFormat(labelWidth, 7, tr(b.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(countWidth, 7, strconv.Itoa(b.Count), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
