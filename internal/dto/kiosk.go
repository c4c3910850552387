package dto

import (
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// Calendar view names accepted by /calendar.
const (
	ViewWeekly  = "weekly"
	ViewGrid    = "grid"
	ViewMonthly = "monthly"
)

// CourseRef is the course data embedded in class payloads.
type CourseRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ClassView is an enriched class as shown on the kiosk. Status is computed
// from the request clock; StatusOverride is the stored value, if any.
type ClassView struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description,omitempty"`
	DayOfWeek       int                 `json:"day_of_week"`
	DayName         string              `json:"day_name"`
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	DurationMinutes int                 `json:"duration_minutes"`
	Duration        string              `json:"duration"`
	Period          *string             `json:"period,omitempty"`
	Status          models.ClassStatus  `json:"computed_status"`
	StatusOverride  *models.ClassStatus `json:"status_override,omitempty"`
	Course          CourseRef           `json:"course"`
	Teacher         models.Teacher      `json:"teacher"`
	Room            models.Room         `json:"room"`
}

// ClassDetail adds the relative labels of the class's next meeting.
type ClassDetail struct {
	ClassView
	NextDate     string `json:"next_date"`
	NextDayLabel string `json:"next_day_label"`
}

// DayColumn describes one day header of a projection.
type DayColumn struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	DayName string `json:"day_name"`
	IsToday bool   `json:"is_today"`
}

// ScheduleCell holds the classes of one slot on one day. The kiosk shows the
// first class; Conflict flags duplicated data.
type ScheduleCell struct {
	DayLabel string      `json:"day_label"`
	Classes  []ClassView `json:"classes"`
	Conflict bool        `json:"conflict"`
}

// ScheduleRow is one time slot across the projected days.
type ScheduleRow struct {
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Label     string         `json:"label"`
	Cells     []ScheduleCell `json:"cells"`
}

// ScheduleTable is the course timetable over the next few days.
type ScheduleTable struct {
	Course      CourseRef     `json:"course"`
	Days        []DayColumn   `json:"days"`
	Rows        []ScheduleRow `json:"rows"`
	Empty       bool          `json:"empty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// CourseSummary is a course card with its number of weekly classes.
type CourseSummary struct {
	models.Course
	ClassCount int `json:"class_count"`
}

// MiniCalendarDay is one column of a course's mini weekly calendar.
type MiniCalendarDay struct {
	DayColumn
	HasClasses bool        `json:"has_classes"`
	Classes    []ClassView `json:"classes"`
}

// CourseDetail is a course with its mini calendar over the next days.
type CourseDetail struct {
	CourseSummary
	Teachers []models.Teacher  `json:"teachers"`
	Days     []MiniCalendarDay `json:"days"`
}

// ClassFilterRequest binds /classes and /calendar filter parameters.
type ClassFilterRequest struct {
	CourseID  string `form:"courseId"`
	TeacherID string `form:"teacherId"`
	Period    string `form:"period"`
	Search    string `form:"search" binding:"max=100"`
}

// Criteria converts the request into filter criteria.
func (r ClassFilterRequest) Criteria() models.FilterCriteria {
	return models.FilterCriteria{CourseID: r.CourseID, TeacherID: r.TeacherID, Period: r.Period, Search: r.Search}
}

// CalendarRequest binds /calendar query parameters.
type CalendarRequest struct {
	ClassFilterRequest
	View  string `form:"view" binding:"omitempty,oneof=weekly grid monthly"`
	Date  string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Shift int    `form:"shift" binding:"min=-520,max=520"`
}

// CalendarDay is one date of a weekly or monthly calendar.
type CalendarDay struct {
	Date      string      `json:"date"`
	DayName   string      `json:"day_name"`
	DayAbbrev string      `json:"day_abbrev"`
	IsToday   bool        `json:"is_today"`
	InMonth   bool        `json:"in_month"`
	Classes   []ClassView `json:"classes"`
}

// CalendarView is the /calendar payload. Weekly fills Days, grid fills Grid
// and monthly fills Weeks.
type CalendarView struct {
	View       string          `json:"view"`
	Reference  string          `json:"reference"`
	RangeStart string          `json:"range_start"`
	RangeEnd   string          `json:"range_end"`
	RangeLabel string          `json:"range_label"`
	Days       []CalendarDay   `json:"days,omitempty"`
	Grid       *GridView       `json:"grid,omitempty"`
	Weeks      [][]CalendarDay `json:"weeks,omitempty"`
}

// GridView is a time-slot by weekday table.
type GridView struct {
	Days []DayColumn   `json:"days"`
	Rows []ScheduleRow `json:"rows"`
}

// ReloadResult summarises a catalog (re)load.
type ReloadResult struct {
	Version  uint64    `json:"version"`
	Source   string    `json:"source"`
	Courses  int       `json:"courses"`
	Teachers int       `json:"teachers"`
	Rooms    int       `json:"rooms"`
	Classes  int       `json:"classes"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// SystemMetrics is a lightweight snapshot of runtime counters.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	Projections              uint64    `json:"projections"`
	CatalogVersion           uint64    `json:"catalog_version"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
