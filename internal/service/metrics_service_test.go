package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/courses", 200, time.Millisecond)
		m.RecordCacheOperation(true, time.Millisecond)
		m.ObserveCacheWrite(time.Millisecond)
		m.ObserveCatalogLoad("stub", true, time.Millisecond)
		m.SetCatalog(1, 7)
		m.AddIntegrityErrors(2)
		m.AddInvalidRecord("class")
		m.IncProjection("course_schedule")
	})
	assert.Equal(t, uint64(0), m.Snapshot().RequestsTotal)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest("GET", "/courses", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/courses", 200, 30*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.IncProjection("calendar_weekly")
	m.SetCatalog(4, 7)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(2), snap.CacheMisses)
	assert.InDelta(t, 1.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.Equal(t, uint64(1), snap.Projections)
	assert.Equal(t, uint64(4), snap.CatalogVersion)
	assert.Positive(t, snap.Goroutines)
}

func TestMetricsServiceCountsProjectionsAndLoads(t *testing.T) {
	m := NewMetricsService()
	catalog := NewCatalogService(&sourceStub{ds: kioskDataset()}, nil, m, nil, CatalogOptions{})
	_, err := catalog.Reload(context.Background())
	require.NoError(t, err)

	svc := NewScheduleService(catalog, nil, m, nil, ScheduleOptions{Location: time.UTC})
	_, _, err = svc.CourseSchedule(context.Background(), "1", 5, kioskNow)
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["kiosk_catalog_load_seconds"])
	assert.True(t, names["kiosk_projections_total"])
	assert.True(t, names["kiosk_catalog_version"])
	assert.Equal(t, uint64(1), m.Snapshot().Projections)
}
