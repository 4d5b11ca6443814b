// Package export renders reports and client lists for download and for the
// terminal.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/clientview/internal/core"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ReportTitle heads every exported report.
const ReportTitle = "Client report"

// Format is a download format.
type Format string

const (
	FormatXLSX     Format = "xlsx"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// ParseFormat validates a format name. Empty input selects xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Filename returns the attachment name for a report generated by r.
func (f Format) Filename(r core.Report) string {
	return "client-report-" + r.GeneratedAt.Format("20060102-150405") + "." + string(f)
}

// WriteReport writes r to w in format f.
func WriteReport(w io.Writer, f Format, r core.Report) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// subtitle is the line under the report title.
func subtitle(r core.Report) string {
	return fmt.Sprintf("Generated %s | Clients: %d | Reference wage: %s",
		r.GeneratedAt.Format("02/01/2006 15:04"), r.Clients, core.FormatBRL(r.ReferenceWage))
}
