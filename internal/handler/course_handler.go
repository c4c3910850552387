package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/service"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/export"
	"github.com/noah-isme/course-kiosk-api/pkg/response"
)

type courseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseSummary, error)
	CourseDetail(ctx context.Context, courseID string, days int, now time.Time) (*dto.CourseDetail, error)
	CourseSchedule(ctx context.Context, courseID string, days int, now time.Time) (*dto.ScheduleTable, bool, error)
}

type courseExporter interface {
	ExportCourse(ctx context.Context, courseID string, f export.Format, days int, now time.Time) (*service.ExportResult, error)
}

// CourseHandler serves the course selection and timetable screens.
type CourseHandler struct {
	service  courseService
	exporter courseExporter
	clock    *Clock
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(svc courseService, exporter courseExporter, clock *Clock) *CourseHandler {
	return &CourseHandler{service: svc, exporter: exporter, clock: clock}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Detail godoc
// @Summary Course detail with mini calendar
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param days query int false "Days to project (1-14)"
// @Param now query string false "RFC3339 clock override"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Detail(c *gin.Context) {
	now, days, err := h.projectionParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.CourseDetail(c.Request.Context(), c.Param("id"), days, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Schedule godoc
// @Summary Course timetable for the next days
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param days query int false "Days to project (1-14)"
// @Param now query string false "RFC3339 clock override"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/schedule [get]
func (h *CourseHandler) Schedule(c *gin.Context) {
	now, days, err := h.projectionParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	table, hit, err := h.service.CourseSchedule(c.Request.Context(), c.Param("id"), days, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, table, hit, start)
}

// Export godoc
// @Summary Download a course timetable
// @Tags Courses
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/calendar
// @Param id path string true "Course ID"
// @Param format query string false "csv, pdf, xlsx or ics"
// @Param days query int false "Days to project (1-14)"
// @Success 200 {file} file
// @Router /courses/{id}/schedule/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	f, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	now, days, err := h.projectionParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.ExportCourse(c.Request.Context(), c.Param("id"), f, days, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}

func (h *CourseHandler) projectionParams(c *gin.Context) (time.Time, int, error) {
	now, err := h.clock.Now(c)
	if err != nil {
		return time.Time{}, 0, err
	}
	days, err := intQuery(c, "days")
	if err != nil {
		return time.Time{}, 0, err
	}
	return now, days, nil
}
