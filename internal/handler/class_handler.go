package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/response"
)

type classService interface {
	ListClasses(ctx context.Context, criteria models.FilterCriteria, now time.Time) ([]dto.ClassView, error)
	ClassDetail(ctx context.Context, classID string, now time.Time) (*dto.ClassDetail, error)
	Calendar(ctx context.Context, req dto.CalendarRequest, now time.Time) (*dto.CalendarView, bool, error)
}

// ClassHandler serves class listings and the calendar screens.
type ClassHandler struct {
	service classService
	clock   *Clock
}

// NewClassHandler constructs the handler.
func NewClassHandler(svc classService, clock *Clock) *ClassHandler {
	return &ClassHandler{service: svc, clock: clock}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param courseId query string false "Filter by course"
// @Param teacherId query string false "Filter by teacher"
// @Param period query string false "Filter by period"
// @Param search query string false "Case-insensitive text search"
// @Param page query int false "Page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	var req dto.ClassFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	page, err := intQuery(c, "page")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	if page < 0 || limit < 0 || limit > MaxPageSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("limit must be between 1 and %d and page must not be negative", MaxPageSize)))
		return
	}
	now, err := h.clock.Now(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	classes, err := h.service.ListClasses(c.Request.Context(), req.Criteria(), now)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination := paginate(classes, page, limit)
	response.JSON(c, http.StatusOK, items, pagination)
}

// Detail godoc
// @Summary Class detail with its next meeting
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Param now query string false "RFC3339 clock override"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Detail(c *gin.Context) {
	now, err := h.clock.Now(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.ClassDetail(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Calendar godoc
// @Summary Weekly, grid or monthly calendar
// @Tags Calendar
// @Produce json
// @Param view query string false "weekly, grid or monthly"
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Param shift query int false "Weeks (weekly, grid) or months (monthly) to move"
// @Param courseId query string false "Filter by course"
// @Param teacherId query string false "Filter by teacher"
// @Param period query string false "Filter by period"
// @Param search query string false "Case-insensitive text search"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *ClassHandler) Calendar(c *gin.Context) {
	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	now, err := h.clock.Now(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	view, hit, err := h.service.Calendar(c.Request.Context(), req, now)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, view, hit, start)
}
