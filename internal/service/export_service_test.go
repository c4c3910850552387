package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/export"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
)

type failingRenderer struct{}

func (failingRenderer) Render(table export.Table) ([]byte, error) {
	return nil, errors.New("font missing")
}

func newExportService(t *testing.T, renderers Renderers) *ExportService {
	t.Helper()
	schedule := newScheduleService(t, nil)
	return NewExportService(schedule, renderers, format.PtBR, time.UTC, nil)
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportService(t, DefaultRenderers())

	result, err := svc.ExportCourse(context.Background(), "1", export.FormatCSV, 2, kioskNow)
	require.NoError(t, err)
	assert.Equal(t, "course-1-schedule.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	lines := strings.SplitN(string(result.Payload), "\n", 2)
	assert.Equal(t, "Horário,Hoje,Amanhã", lines[0])
	assert.Contains(t, string(result.Payload), "10:15 - 12:15,\"Banco de Dados\nLab. Informática 1\nProf. João Silva\",")
}

func TestExportServiceICS(t *testing.T) {
	svc := newExportService(t, DefaultRenderers())

	result, err := svc.ExportCourse(context.Background(), "4", export.FormatICS, 0, kioskNow)
	require.NoError(t, err)
	assert.Equal(t, "course-4-schedule.ics", result.Filename)

	body := string(result.Payload)
	assert.Contains(t, body, "UID:class-7@course-kiosk")
	assert.Contains(t, body, "DTSTART:20261023T130000Z")
	assert.Contains(t, body, "DTEND:20261023T170000Z")
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY")
}

func TestExportServiceXLSXAndPDF(t *testing.T) {
	svc := newExportService(t, DefaultRenderers())

	for _, f := range []export.Format{export.FormatXLSX, export.FormatPDF} {
		result, err := svc.ExportCourse(context.Background(), "1", f, 5, kioskNow)
		require.NoError(t, err, f)
		assert.NotEmpty(t, result.Payload, f)
		assert.Equal(t, f.ContentType(), result.ContentType)
	}
}

func TestExportServiceErrors(t *testing.T) {
	renderers := DefaultRenderers()
	renderers.PDF = failingRenderer{}
	svc := newExportService(t, renderers)

	_, err := svc.ExportCourse(context.Background(), "1", export.FormatPDF, 5, kioskNow)
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	_, err = svc.ExportCourse(context.Background(), "1", export.Format("docx"), 5, kioskNow)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.ExportCourse(context.Background(), "9", export.FormatICS, 5, kioskNow)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
