package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/clientview/internal/core"
)

var testNow = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

func sampleReport() core.Report {
	clients := []core.Client{
		{ID: "1", TaxID: "111", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), AnnualIncome: decimal.NewFromInt(20000)},
		{ID: "2", TaxID: "222", AnnualIncome: decimal.NewFromInt(500)},
	}
	accounts := []core.Account{
		{OwnerTaxID: "111", Balance: decimal.NewFromInt(25000)},
	}
	return core.Aggregate(clients, accounts, core.DefaultPolicy(), testNow)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatXLSX},
		{"XLSX", FormatXLSX},
		{"pdf", FormatPDF},
		{"markdown", FormatMarkdown},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(csv) error = %v, want ErrUnsupportedFormat", err)
	}
	if core.MapError(ErrUnsupportedFormat).Code != "REQ004" {
		t.Errorf("ErrUnsupportedFormat maps to %s", core.MapError(ErrUnsupportedFormat).Code)
	}
}

func TestFilename(t *testing.T) {
	got := FormatPDF.Filename(sampleReport())
	if got != "client-report-20250615-093000.pdf" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, r); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("sheets = %v, want [%s]", sheets, SheetName)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if rows[0][0] != ReportTitle {
		t.Errorf("A1 = %q, want %q", rows[0][0], ReportTitle)
	}

	var text strings.Builder
	for _, row := range rows {
		text.WriteString(strings.Join(row, "|"))
		text.WriteString("\n")
	}
	for _, h := range r.Histograms {
		if !strings.Contains(text.String(), h.Title) {
			t.Errorf("workbook missing histogram %q", h.Title)
		}
	}
	if !strings.Contains(text.String(), "High|1") {
		t.Errorf("workbook missing the High balance bucket:\n%s", text.String())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleReport()); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWriteReportDispatch(t *testing.T) {
	for _, f := range []Format{FormatXLSX, FormatPDF, FormatMarkdown} {
		var buf bytes.Buffer
		if err := WriteReport(&buf, f, sampleReport()); err != nil {
			t.Errorf("WriteReport(%s) error = %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("WriteReport(%s) wrote nothing", f)
		}
	}

	// xlsx is a zip container
	var buf bytes.Buffer
	_ = WriteReport(&buf, FormatXLSX, sampleReport())
	if _, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Errorf("xlsx is not a zip: %v", err)
	}

	if err := WriteReport(&buf, Format("csv"), sampleReport()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("WriteReport(csv) error = %v", err)
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())

	for _, want := range []string{
		"# Client report",
		"## Balance distribution",
		"| High | 1 |",
		"| 11-20 RW | 1 |",
		"| **Total** | **2** |",
		"R$1.518,00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q\n%s", want, md)
		}
	}
}

func TestClientsMarkdown(t *testing.T) {
	centro := &core.Branch{Code: 1, Name: "Centro"}
	page := core.Paginate([]core.Client{
		{ID: "1", Name: "Ana | Souza", TaxID: "12345678901", BirthDate: time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC),
			AnnualIncome: decimal.NewFromInt(60000), Branch: centro},
		{ID: "2", Name: "Bruno", TaxID: "x"},
	}, 1, 16)

	md := ClientsMarkdown(page, testNow)
	for _, want := range []string{
		`Ana \| Souza`,
		"123.456.789-01",
		"| 35 |",
		"R$60.000,00",
		"Centro (1)",
		"| - |",
		"Page 1 of 1 (2 clients, 16 per page)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("ClientsMarkdown() missing %q\n%s", want, md)
		}
	}

	empty := ClientsMarkdown(core.Paginate([]core.Client{}, 1, 16), testNow)
	if !strings.Contains(empty, "No clients match") {
		t.Errorf("empty page = %q", empty)
	}
}

func TestDetailMarkdown(t *testing.T) {
	c := core.Client{ID: "1", Name: "Ana", TaxID: "11222333000181"}
	idx := core.IndexAccounts([]core.Account{
		{ID: "a1", OwnerTaxID: c.TaxID, RawType: "Corrente", Balance: decimal.NewFromInt(10)},
	})
	md := DetailMarkdown(core.Detail(c, idx, testNow))

	for _, want := range []string{"# Ana", "11.222.333/0001-81 (entity)", "| Age | unknown |", "## Accounts (1)", "Corrente", "R$10,00"} {
		if !strings.Contains(md, want) {
			t.Errorf("DetailMarkdown() missing %q\n%s", want, md)
		}
	}
}

func TestBranchesMarkdown(t *testing.T) {
	md := BranchesMarkdown([]core.Branch{{Code: 7, Name: "Centro", Address: "Rua A"}})
	if !strings.Contains(md, "| 7 | Centro | Rua A |") {
		t.Errorf("BranchesMarkdown() = %s", md)
	}
	if !strings.Contains(BranchesMarkdown(nil), "No branches") {
		t.Error("empty branch list not reported")
	}
}
