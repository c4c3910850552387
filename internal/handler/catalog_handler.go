package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/internal/service"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
	"github.com/noah-isme/course-kiosk-api/pkg/response"
)

type catalogReloader interface {
	Ready() bool
	Reload(ctx context.Context) (*dto.ReloadResult, error)
}

type referenceService interface {
	Teachers(ctx context.Context) ([]models.Teacher, error)
	Rooms(ctx context.Context) ([]models.Room, error)
	Periods(ctx context.Context) ([]string, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogHandler exposes reference data and catalog lifecycle endpoints.
type CatalogHandler struct {
	catalog   catalogReloader
	reference referenceService
	cache     cacheInvalidator
	logger    *zap.Logger
}

// NewCatalogHandler constructs the handler. cache may be nil.
func NewCatalogHandler(catalog catalogReloader, reference referenceService, cache cacheInvalidator, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, reference: reference, cache: cache, logger: logger}
}

// Teachers godoc
// @Summary List teachers
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *CatalogHandler) Teachers(c *gin.Context) {
	teachers, err := h.reference.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// Rooms godoc
// @Summary List rooms
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *CatalogHandler) Rooms(c *gin.Context) {
	rooms, err := h.reference.Rooms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Periods godoc
// @Summary List period tags
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periods [get]
func (h *CatalogHandler) Periods(c *gin.Context) {
	periods, err := h.reference.Periods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Reload godoc
// @Summary Reload schedule data from the configured source
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /catalog/reload [post]
func (h *CatalogHandler) Reload(c *gin.Context) {
	result, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(c.Request.Context(), service.ProjectionCachePattern); err != nil {
			h.logger.Warn("projection cache not cleared after reload", zap.Error(err))
		}
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Ready reports whether a catalog snapshot is loaded.
func (h *CatalogHandler) Ready(c *gin.Context) {
	if h.catalog == nil || !h.catalog.Ready() {
		response.Error(c, appErrors.ErrNotReady)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
