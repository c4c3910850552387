package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/export"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
)

type courseScheduler interface {
	CourseSchedule(ctx context.Context, courseID string, days int, now time.Time) (*dto.ScheduleTable, bool, error)
	CourseClasses(ctx context.Context, courseID string) (models.Course, []models.EnrichedClass, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type eventRenderer interface {
	Render(events []export.Event) ([]byte, error)
}

// ExportResult is a rendered file ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// Renderers bundles the encoders used by ExportService.
type Renderers struct {
	CSV  tableRenderer
	PDF  tableRenderer
	XLSX tableRenderer
	ICS  eventRenderer
}

// DefaultRenderers returns the stock encoders.
func DefaultRenderers() Renderers {
	return Renderers{
		CSV:  export.NewCSVExporter(),
		PDF:  export.NewPDFExporter(),
		XLSX: export.NewXLSXExporter(),
		ICS:  export.NewCalendarExporter("-//course-kiosk-api//schedule//PT"),
	}
}

// ExportService renders course timetables as downloadable files.
type ExportService struct {
	schedule  courseScheduler
	renderers Renderers
	locale    *format.Locale
	loc       *time.Location
	logger    *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(schedule courseScheduler, renderers Renderers, locale *format.Locale, loc *time.Location, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locale == nil {
		locale = format.PtBR
	}
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{schedule: schedule, renderers: renderers, locale: locale, loc: loc, logger: logger}
}

// ExportCourse renders a course's timetable. Tabular formats mirror the
// schedule table over the next days; ICS emits every weekly class starting
// at its next occurrence.
func (s *ExportService) ExportCourse(ctx context.Context, courseID string, f export.Format, days int, now time.Time) (*ExportResult, error) {
	var (
		payload []byte
		err     error
	)
	switch f {
	case export.FormatICS:
		payload, err = s.renderCalendar(ctx, courseID, now.In(s.loc))
	case export.FormatCSV, export.FormatPDF, export.FormatXLSX:
		payload, err = s.renderTable(ctx, courseID, f, days, now)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", f))
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("course timetable exported",
		zap.String("course_id", courseID),
		zap.String("format", string(f)),
		zap.Int("bytes", len(payload)),
	)
	return &ExportResult{
		Filename:    fmt.Sprintf("course-%s-schedule.%s", courseID, f.Extension()),
		ContentType: f.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *ExportService) renderTable(ctx context.Context, courseID string, f export.Format, days int, now time.Time) ([]byte, error) {
	table, _, err := s.schedule.CourseSchedule(ctx, courseID, days, now)
	if err != nil {
		return nil, err
	}

	out := export.Table{
		Title:   table.Course.Name,
		Headers: make([]string, 0, len(table.Days)+1),
		Rows:    make([][]string, 0, len(table.Rows)),
	}
	out.Headers = append(out.Headers, s.locale.TimeHeader())
	for _, d := range table.Days {
		out.Headers = append(out.Headers, d.Label)
	}
	for _, row := range table.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.StartTime+" - "+row.EndTime)
		for _, cell := range row.Cells {
			record = append(record, cellText(cell))
		}
		out.Rows = append(out.Rows, record)
	}

	var renderer tableRenderer
	switch f {
	case export.FormatPDF:
		renderer = s.renderers.PDF
	case export.FormatXLSX:
		renderer = s.renderers.XLSX
	default:
		renderer = s.renderers.CSV
	}
	payload, err := renderer.Render(out)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}
	return payload, nil
}

func (s *ExportService) renderCalendar(ctx context.Context, courseID string, now time.Time) ([]byte, error) {
	course, classes, err := s.schedule.CourseClasses(ctx, courseID)
	if err != nil {
		return nil, err
	}

	events := make([]export.Event, 0, len(classes))
	for _, c := range classes {
		start := calendar.NextOccurrence(c.DayOfWeek, c.StartTime, now)
		events = append(events, export.Event{
			UID:         fmt.Sprintf("class-%s@course-kiosk", c.ID),
			Summary:     c.Title + " - " + course.Name,
			Location:    c.Room.Name,
			Description: c.Teacher.Name,
			Start:       start,
			End:         calendar.At(start, c.EndTime),
		})
	}
	payload, err := s.renderers.ICS.Render(events)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar")
	}
	return payload, nil
}

// cellText prints each class as title, room and teacher; duplicates are
// separated by a blank line.
func cellText(cell dto.ScheduleCell) string {
	parts := make([]string, 0, len(cell.Classes))
	for _, c := range cell.Classes {
		parts = append(parts, c.Title+"\n"+c.Room.Name+"\n"+c.Teacher.Name)
	}
	return strings.Join(parts, "\n\n")
}
