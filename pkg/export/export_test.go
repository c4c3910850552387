package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func timetable() Table {
	return Table{
		Title:   "Desenvolvimento de Sistemas",
		Headers: []string{"Horário", "Segunda", "Terça"},
		Rows: [][]string{
			{"08:00 - 10:00", "Programação Web\nLab. Informática 1", ""},
			{"10:15 - 12:15", "Banco de Dados"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "xlsx", f.Extension())

	_, err = ParseFormat("docx")
	assert.EqualError(t, err, `unsupported export format "docx"`)

	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/calendar; charset=utf-8", FormatICS.ContentType())
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter().Render(timetable())
	require.NoError(t, err)

	want := "Horário,Segunda,Terça\n" +
		"08:00 - 10:00,\"Programação Web\nLab. Informática 1\",\n" +
		"10:15 - 12:15,Banco de Dados,\n"
	assert.Equal(t, want, string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.EqualError(t, err, "csv requires at least one header")
	_, err = NewPDFExporter().Render(Table{})
	assert.EqualError(t, err, "pdf requires at least one header")
	_, err = NewXLSXExporter().Render(Table{})
	assert.EqualError(t, err, "xlsx requires at least one header")
}

func TestPDFExporterRenders(t *testing.T) {
	out, err := NewPDFExporter().Render(timetable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestXLSXExporterWritesCells(t *testing.T) {
	out, err := NewXLSXExporter().Render(timetable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())
	title, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Desenvolvimento de Sistemas", title)

	header, err := f.GetCellValue(xlsxSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Terça", header)

	cell, err := f.GetCellValue(xlsxSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Banco de Dados", cell)
}

func TestCalendarExporterWeeklyEvents(t *testing.T) {
	exporter := NewCalendarExporter("-//course-kiosk//schedule//PT")
	exporter.now = func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }

	start := time.Date(2026, time.October, 23, 13, 0, 0, 0, time.UTC)
	out, err := exporter.Render([]Event{{
		UID:      "class-7@course-kiosk",
		Summary:  "Gestão de Projetos",
		Location: "Sala 201",
		Start:    start,
		End:      start.Add(4 * time.Hour),
	}})
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "METHOD:PUBLISH")
	assert.Contains(t, body, "UID:class-7@course-kiosk")
	assert.Contains(t, body, "DTSTART:20261023T130000Z")
	assert.Contains(t, body, "DTEND:20261023T170000Z")
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY")
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
}

func TestCalendarExporterWritesZonedTimes(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	exporter := NewCalendarExporter("")
	exporter.now = func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }

	// 2026-10-23 is still on EDT; the series crosses the November change.
	start := time.Date(2026, time.October, 23, 9, 0, 0, 0, loc)
	out, err := exporter.Render([]Event{{
		UID:     "class-7@course-kiosk",
		Summary: "Gestão de Projetos",
		Start:   start,
		End:     start.Add(4 * time.Hour),
	}})
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, "X-WR-TIMEZONE:America/New_York")
	assert.Contains(t, body, "DTSTART;TZID=America/New_York:20261023T090000")
	assert.Contains(t, body, "DTEND;TZID=America/New_York:20261023T130000")
	assert.NotContains(t, body, "DTSTART:")
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY")
}

func TestCalendarExporterRejectsBadEvents(t *testing.T) {
	start := time.Date(2026, time.October, 23, 13, 0, 0, 0, time.UTC)
	_, err := NewCalendarExporter("").Render([]Event{{Summary: "x", Start: start, End: start.Add(time.Hour)}})
	assert.Error(t, err)

	_, err = NewCalendarExporter("").Render([]Event{{UID: "a", Start: start, End: start}})
	assert.EqualError(t, err, "event a must end after it starts")
}
