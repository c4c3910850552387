package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/internal/schedule"
	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
)

// MaxProjectionDays bounds the days parameter of course projections.
const MaxProjectionDays = 14

const dateLayout = "2006-01-02"

type snapshotProvider interface {
	Snapshot() (*Snapshot, error)
}

// ScheduleOptions configures how projections are localised.
type ScheduleOptions struct {
	Locale       *format.Locale
	Location     *time.Location
	UpcomingDays int
}

// ScheduleService answers kiosk queries from the active catalog snapshot.
// Every projection takes the caller's clock.
type ScheduleService struct {
	catalog snapshotProvider
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	locale  *format.Locale
	loc     *time.Location
	days    int
}

// NewScheduleService constructs a schedule service.
func NewScheduleService(catalog snapshotProvider, cache *CacheService, metrics *MetricsService, logger *zap.Logger, opts ScheduleOptions) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Locale == nil {
		opts.Locale = format.PtBR
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.UpcomingDays <= 0 {
		opts.UpcomingDays = 5
	}
	return &ScheduleService{
		catalog: catalog,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		locale:  opts.Locale,
		loc:     opts.Location,
		days:    opts.UpcomingDays,
	}
}

// Location returns the kiosk timezone.
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// ListCourses returns every course with its number of weekly classes.
func (s *ScheduleService) ListCourses(ctx context.Context) ([]dto.CourseSummary, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(snap.Courses))
	for _, c := range snap.Classes {
		counts[c.CourseID]++
	}
	out := make([]dto.CourseSummary, 0, len(snap.Courses))
	for _, course := range snap.Courses {
		out = append(out, dto.CourseSummary{Course: course, ClassCount: counts[course.ID]})
	}
	return out, nil
}

func (s *ScheduleService) Teachers(ctx context.Context) ([]models.Teacher, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Teachers, nil
}

func (s *ScheduleService) Rooms(ctx context.Context) ([]models.Room, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Rooms, nil
}

// Periods lists the period tags present in the catalog, sorted.
func (s *ScheduleService) Periods(ctx context.Context) ([]string, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Periods, nil
}

// CourseClasses returns a course and its classes in catalog order.
func (s *ScheduleService) CourseClasses(ctx context.Context, courseID string) (models.Course, []models.EnrichedClass, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return models.Course{}, nil, err
	}
	return s.courseClasses(snap, courseID)
}

func (s *ScheduleService) courseClasses(snap *Snapshot, courseID string) (models.Course, []models.EnrichedClass, error) {
	course, ok := snap.Course(courseID)
	if !ok {
		return models.Course{}, nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, schedule.ApplyFilters(snap.Classes, models.FilterCriteria{CourseID: courseID}), nil
}

// CourseDetail returns the course card plus a mini calendar over the next
// days. The mini calendar lists every class meeting on each weekday, started
// or not.
func (s *ScheduleService) CourseDetail(ctx context.Context, courseID string, days int, now time.Time) (*dto.CourseDetail, error) {
	n, err := s.projectionDays(days)
	if err != nil {
		return nil, err
	}
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	course, classes, err := s.courseClasses(snap, courseID)
	if err != nil {
		return nil, err
	}
	now = now.In(s.loc)

	teachers := make([]models.Teacher, 0)
	seen := make(map[string]struct{})
	for _, c := range classes {
		if _, ok := seen[c.Teacher.ID]; ok {
			continue
		}
		seen[c.Teacher.ID] = struct{}{}
		teachers = append(teachers, c.Teacher)
	}

	dates := schedule.NextDays(n, now)
	columns := s.dayColumns(dates, now, true)
	out := make([]dto.MiniCalendarDay, len(dates))
	for i, day := range dates {
		dayClasses := schedule.ClassesOnDay(classes, day)
		out[i] = dto.MiniCalendarDay{
			DayColumn:  columns[i],
			HasClasses: schedule.HasClassesOnDay(classes, day),
			Classes:    s.views(dayClasses, now),
		}
	}
	s.metrics.IncProjection("mini_calendar")

	return &dto.CourseDetail{
		CourseSummary: dto.CourseSummary{Course: course, ClassCount: len(classes)},
		Teachers:      teachers,
		Days:          out,
	}, nil
}

// CourseSchedule builds the course timetable: the classes still ahead this
// week, laid out as time slots by the next days. The boolean reports a cache
// hit.
func (s *ScheduleService) CourseSchedule(ctx context.Context, courseID string, days int, now time.Time) (*dto.ScheduleTable, bool, error) {
	n, err := s.projectionDays(days)
	if err != nil {
		return nil, false, err
	}
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, false, err
	}
	course, classes, err := s.courseClasses(snap, courseID)
	if err != nil {
		return nil, false, err
	}
	now = now.In(s.loc)

	key := fmt.Sprintf("schedule:v%d:course:%s:days:%d:%s", snap.Version, courseID, n, minuteKey(now))
	table, hit, err := remember(ctx, s.cache, key, func() (*dto.ScheduleTable, error) {
		s.metrics.IncProjection("course_schedule")
		dates := schedule.NextDays(n, now)
		grid := schedule.BuildGrid(schedule.Relevant(classes, now), dates)
		columns := s.dayColumns(dates, now, true)
		return &dto.ScheduleTable{
			Course:      courseRef(course),
			Days:        columns,
			Rows:        s.rows(grid, columns, now),
			Empty:       grid.Empty(),
			GeneratedAt: now,
		}, nil
	})
	return table, hit, err
}

// ListClasses returns the filtered classes with their computed status.
func (s *ScheduleService) ListClasses(ctx context.Context, criteria models.FilterCriteria, now time.Time) ([]dto.ClassView, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	now = now.In(s.loc)
	return s.views(schedule.ApplyFilters(snap.Classes, criteria), now), nil
}

// ClassDetail returns one class and the labels of its next meeting.
func (s *ScheduleService) ClassDetail(ctx context.Context, classID string, now time.Time) (*dto.ClassDetail, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	rec, ok := snap.Class(classID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	now = now.In(s.loc)
	next := calendar.NextOccurrence(rec.DayOfWeek, rec.StartTime, now)
	return &dto.ClassDetail{
		ClassView:    s.view(rec, now),
		NextDate:     next.Format(dateLayout),
		NextDayLabel: schedule.RelativeDayLabel(next, now, s.locale),
	}, nil
}

// Calendar renders the weekly, grid or monthly calendar around the requested
// date, shifted by whole weeks (weekly, grid) or months (monthly).
func (s *ScheduleService) Calendar(ctx context.Context, req dto.CalendarRequest, now time.Time) (*dto.CalendarView, bool, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, false, err
	}
	now = now.In(s.loc)

	view := req.View
	if view == "" {
		view = dto.ViewWeekly
	}
	ref := now
	if req.Date != "" {
		ref, err = time.ParseInLocation(dateLayout, req.Date, s.loc)
		if err != nil {
			return nil, false, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
	}

	criteria := req.Criteria()
	key := fmt.Sprintf("schedule:v%d:calendar:%s:%s:%d:%s:%s:%s:%q:%s",
		snap.Version, view, ref.Format(dateLayout), req.Shift,
		criteria.CourseID, criteria.TeacherID, criteria.Period, strings.ToLower(criteria.Search), minuteKey(now))

	return remember(ctx, s.cache, key, func() (*dto.CalendarView, error) {
		filtered := schedule.ApplyFilters(snap.Classes, criteria)
		switch view {
		case dto.ViewWeekly:
			s.metrics.IncProjection("calendar_weekly")
			return s.weekly(filtered, calendar.AddWeeks(ref, req.Shift), now), nil
		case dto.ViewGrid:
			s.metrics.IncProjection("calendar_grid")
			return s.grid(filtered, calendar.AddWeeks(ref, req.Shift), now), nil
		case dto.ViewMonthly:
			s.metrics.IncProjection("calendar_monthly")
			return s.monthly(filtered, calendar.AddMonths(ref, req.Shift), now), nil
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "view must be weekly, grid or monthly")
		}
	})
}

func (s *ScheduleService) weekly(classes []models.EnrichedClass, ref, now time.Time) *dto.CalendarView {
	week := calendar.WeekDays(ref)
	buckets := schedule.GroupByDay(classes)
	days := make([]dto.CalendarDay, len(week))
	for i, d := range week {
		days[i] = s.calendarDay(d, now, true, buckets[d.Weekday()])
	}
	return &dto.CalendarView{
		View:       dto.ViewWeekly,
		Reference:  ref.Format(dateLayout),
		RangeStart: week[0].Format(dateLayout),
		RangeEnd:   week[len(week)-1].Format(dateLayout),
		RangeLabel: s.locale.FormatDateRange(week[0], week[len(week)-1]),
		Days:       days,
	}
}

func (s *ScheduleService) grid(classes []models.EnrichedClass, ref, now time.Time) *dto.CalendarView {
	week := calendar.WeekDays(ref)
	grid := schedule.BuildGrid(classes, week[:])
	columns := s.dayColumns(week[:], now, false)
	return &dto.CalendarView{
		View:       dto.ViewGrid,
		Reference:  ref.Format(dateLayout),
		RangeStart: week[0].Format(dateLayout),
		RangeEnd:   week[len(week)-1].Format(dateLayout),
		RangeLabel: s.locale.FormatDateRange(week[0], week[len(week)-1]),
		Grid:       &dto.GridView{Days: columns, Rows: s.rows(grid, columns, now)},
	}
}

func (s *ScheduleService) monthly(classes []models.EnrichedClass, ref, now time.Time) *dto.CalendarView {
	buckets := schedule.GroupByDay(classes)
	weeks := calendar.MonthWeeks(ref)
	out := make([][]dto.CalendarDay, len(weeks))
	for i, week := range weeks {
		row := make([]dto.CalendarDay, len(week))
		for j, d := range week {
			row[j] = s.calendarDay(d, now, d.Month() == ref.Month(), buckets[d.Weekday()])
		}
		out[i] = row
	}
	first := weeks[0][0]
	last := weeks[len(weeks)-1][calendar.DaysPerWeek-1]
	return &dto.CalendarView{
		View:       dto.ViewMonthly,
		Reference:  ref.Format(dateLayout),
		RangeStart: first.Format(dateLayout),
		RangeEnd:   last.Format(dateLayout),
		RangeLabel: s.locale.FormatDateRange(first, last),
		Weeks:      out,
	}
}

func (s *ScheduleService) calendarDay(d, now time.Time, inMonth bool, classes []models.EnrichedClass) dto.CalendarDay {
	weekday := int(d.Weekday())
	return dto.CalendarDay{
		Date:      d.Format(dateLayout),
		DayName:   s.locale.DayName(weekday),
		DayAbbrev: s.locale.DayNameAbbrev(weekday),
		IsToday:   calendar.IsToday(d, now),
		InMonth:   inMonth,
		Classes:   s.views(classes, now),
	}
}

// dayColumns labels dates relative to now (Hoje, Amanhã, weekday) or, when
// relative is false, with the abbreviated weekday.
func (s *ScheduleService) dayColumns(dates []time.Time, now time.Time, relative bool) []dto.DayColumn {
	columns := make([]dto.DayColumn, len(dates))
	for i, d := range dates {
		weekday := int(d.Weekday())
		label := s.locale.DayNameAbbrev(weekday)
		if relative {
			label = schedule.RelativeDayLabel(d, now, s.locale)
		}
		columns[i] = dto.DayColumn{
			Date:    d.Format(dateLayout),
			Label:   label,
			DayName: s.locale.DayName(weekday),
			IsToday: calendar.IsToday(d, now),
		}
	}
	return columns
}

func (s *ScheduleService) rows(grid schedule.Grid, columns []dto.DayColumn, now time.Time) []dto.ScheduleRow {
	rows := make([]dto.ScheduleRow, len(grid.Slots))
	for i, slot := range grid.Slots {
		cells := make([]dto.ScheduleCell, len(grid.Days))
		for j := range grid.Days {
			matches := grid.Cells[i][j]
			if len(matches) > 1 {
				s.logger.Debug("overlapping classes in slot",
					zap.String("start_time", slot.StartTime),
					zap.String("day", columns[j].Date),
					zap.Int("count", len(matches)),
				)
			}
			cells[j] = dto.ScheduleCell{
				DayLabel: columns[j].Label,
				Classes:  s.views(matches, now),
				Conflict: len(matches) > 1,
			}
		}
		rows[i] = dto.ScheduleRow{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Label:     slotLabel(slot),
			Cells:     cells,
		}
	}
	return rows
}

func (s *ScheduleService) views(classes []models.EnrichedClass, now time.Time) []dto.ClassView {
	out := make([]dto.ClassView, len(classes))
	for i, c := range classes {
		out[i] = s.view(c, now)
	}
	return out
}

func (s *ScheduleService) view(c models.EnrichedClass, now time.Time) dto.ClassView {
	minutes := format.Duration(c.StartTime, c.EndTime)
	return dto.ClassView{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		DayOfWeek:       c.DayOfWeek,
		DayName:         s.locale.DayName(c.DayOfWeek),
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationMinutes: minutes,
		Duration:        format.FormatDuration(minutes),
		Period:          c.Period,
		Status:          schedule.StatusOf(c.ClassRecord, now),
		StatusOverride:  c.Status,
		Course:          courseRef(c.Course),
		Teacher:         c.Teacher,
		Room:            c.Room,
	}
}

func (s *ScheduleService) projectionDays(days int) (int, error) {
	switch {
	case days == 0:
		return s.days, nil
	case days < 0 || days > MaxProjectionDays:
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("days must be between 1 and %d", MaxProjectionDays))
	default:
		return days, nil
	}
}

func courseRef(c models.Course) dto.CourseRef {
	return dto.CourseRef{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

// slotLabel renders a slot the way the kiosk board prints it, e.g. "08h00 10h00".
func slotLabel(slot models.TimeSlot) string {
	return strings.Replace(slot.StartTime, ":", "h", 1) + " " + strings.Replace(slot.EndTime, ":", "h", 1)
}

func minuteKey(now time.Time) string {
	return now.Format("200601021504")
}
