package handler

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Courses *CourseHandler
	Classes *ClassHandler
	Catalog *CatalogHandler
	Metrics *MetricsHandler
}

// RegisterRoutes mounts probes at the root and the kiosk API under prefix.
func RegisterRoutes(r gin.IRouter, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Catalog.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.GET("/metrics/summary", h.Metrics.Summary)

	api.GET("/courses", h.Courses.List)
	api.GET("/courses/:id", h.Courses.Detail)
	api.GET("/courses/:id/schedule", h.Courses.Schedule)
	api.GET("/courses/:id/schedule/export", h.Courses.Export)

	api.GET("/classes", h.Classes.List)
	api.GET("/classes/:id", h.Classes.Detail)
	api.GET("/calendar", h.Classes.Calendar)

	api.GET("/teachers", h.Catalog.Teachers)
	api.GET("/rooms", h.Catalog.Rooms)
	api.GET("/periods", h.Catalog.Periods)
	api.POST("/catalog/reload", h.Catalog.Reload)
}
