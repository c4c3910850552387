package export

import (
	"fmt"
	"strings"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatICS  Format = "ics"
)

// ParseFormat accepts a format name case-insensitively. Empty means CSV.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatPDF, FormatXLSX, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Table is a rectangular timetable. Every row should have len(Headers) cells;
// missing cells render empty.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t Table) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func (t Table) validate(kind string) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}
