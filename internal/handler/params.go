package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-kiosk-api/internal/middleware"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/response"
)

// Clock resolves the instant a request is evaluated at. When overrides are
// allowed, an RFC3339 `now` query parameter replaces the wall clock so a
// kiosk screen can be previewed at any moment.
type Clock struct {
	allowOverride bool
	now           func() time.Time
}

// NewClock builds a request clock.
func NewClock(allowOverride bool) *Clock {
	return &Clock{allowOverride: allowOverride, now: time.Now}
}

// Now returns the request instant.
func (k *Clock) Now(c *gin.Context) (time.Time, error) {
	if k == nil {
		return time.Now(), nil
	}
	raw := strings.TrimSpace(c.Query("now"))
	if raw == "" || !k.allowOverride {
		return k.now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "now must be an RFC3339 timestamp")
	}
	return t, nil
}

// intQuery reads an optional integer query parameter; absent means zero.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be an integer")
	}
	return v, nil
}

func bindError(err error) error {
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"), err.Error())
}

// respondCached writes data with the cache flag and processing time merged
// into the response meta.
func respondCached(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, nil, meta)
}

// MaxPageSize bounds the limit query parameter on paginated listings.
const MaxPageSize = 200

// paginate slices items when limit is positive. Without a limit the whole
// list is returned and no pagination block is emitted.
func paginate[T any](items []T, page, limit int) ([]T, *models.Pagination) {
	if limit <= 0 {
		return items, nil
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	from := total
	if page-1 <= total/limit {
		from = min((page-1)*limit, total)
	}
	to := total
	if limit < total-from {
		to = from + limit
	}
	return items[from:to], &models.Pagination{Page: page, PageSize: limit, TotalCount: total}
}
