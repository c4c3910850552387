package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/internal/dto"
	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/internal/schedule"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
)

// DatasetSource supplies the raw kiosk data.
type DatasetSource interface {
	Name() string
	Load(ctx context.Context) (models.Dataset, error)
}

// Snapshot is an immutable, enriched view of one catalog load.
type Snapshot struct {
	Version  uint64
	Source   string
	LoadedAt time.Time
	Courses  []models.Course
	Teachers []models.Teacher
	Rooms    []models.Room
	Classes  []models.EnrichedClass
	Periods  []string
	Skipped  int

	catalog *schedule.MemoryCatalog
	classes map[string]int
}

// Course looks a course up by id.
func (s *Snapshot) Course(id string) (models.Course, bool) {
	return s.catalog.Course(id)
}

// Class looks an enriched class up by id.
func (s *Snapshot) Class(id string) (models.EnrichedClass, bool) {
	idx, ok := s.classes[id]
	if !ok {
		return models.EnrichedClass{}, false
	}
	return s.Classes[idx], true
}

// CatalogOptions tunes how strictly a load treats bad records.
type CatalogOptions struct {
	// SkipInvalid drops invalid or dangling records instead of failing the load.
	SkipInvalid bool
}

// CatalogService loads the dataset, validates and enriches it, and serves
// the resulting snapshot to concurrent readers.
type CatalogService struct {
	source    DatasetSource
	validator *schedule.Validator
	metrics   *MetricsService
	logger    *zap.Logger
	opts      CatalogOptions
	now       func() time.Time

	reload   sync.Mutex
	mu       sync.RWMutex
	snapshot *Snapshot
	version  uint64
}

// NewCatalogService constructs the catalog service. Call Reload before serving.
func NewCatalogService(source DatasetSource, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, opts CatalogOptions) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		source:    source,
		validator: schedule.NewValidator(validate),
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// Ready reports whether a snapshot has been loaded.
func (s *CatalogService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

// Snapshot returns the active snapshot or ErrNotReady.
func (s *CatalogService) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, appErrors.ErrNotReady
	}
	return s.snapshot, nil
}

// Reload loads the source and swaps in a new snapshot. On failure the
// previous snapshot stays active.
func (s *CatalogService) Reload(ctx context.Context) (*dto.ReloadResult, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	start := time.Now()
	snap, err := s.build(ctx)
	s.metrics.ObserveCatalogLoad(s.source.Name(), err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("catalog load failed", zap.String("source", s.source.Name()), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.version++
	snap.Version = s.version
	s.snapshot = snap
	s.mu.Unlock()

	s.metrics.SetCatalog(snap.Version, len(snap.Classes))
	s.logger.Info("catalog loaded",
		zap.String("source", snap.Source),
		zap.Uint64("version", snap.Version),
		zap.Int("courses", len(snap.Courses)),
		zap.Int("classes", len(snap.Classes)),
		zap.Int("skipped", snap.Skipped),
	)

	return &dto.ReloadResult{
		Version:  snap.Version,
		Source:   snap.Source,
		Courses:  len(snap.Courses),
		Teachers: len(snap.Teachers),
		Rooms:    len(snap.Rooms),
		Classes:  len(snap.Classes),
		Skipped:  snap.Skipped,
		LoadedAt: snap.LoadedAt,
	}, nil
}

func (s *CatalogService) build(ctx context.Context) (*Snapshot, error) {
	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule data")
	}

	ds, invalid := s.validator.Dataset(raw)
	for _, verr := range invalid {
		var ve *schedule.ValidationError
		if errors.As(verr, &ve) {
			s.metrics.AddInvalidRecord(ve.Kind)
		}
	}
	if len(invalid) > 0 && !s.opts.SkipInvalid {
		return nil, appErrors.WithDetails(appErrors.Wrap(invalid[0], appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "schedule data failed validation"), invalid)
	}
	for _, verr := range invalid {
		s.logger.Warn("skipping invalid record", zap.Error(verr))
	}

	catalog := schedule.NewCatalog(ds.Courses, ds.Teachers, ds.Rooms)
	skipped := len(invalid)

	var classes []models.EnrichedClass
	if s.opts.SkipInvalid {
		var dangling []*schedule.IntegrityError
		classes, dangling = schedule.EnrichLenient(ds.Classes, catalog)
		s.metrics.AddIntegrityErrors(len(dangling))
		for _, ierr := range dangling {
			s.logger.Warn("skipping class with dangling reference",
				zap.String("class_id", ierr.ClassID),
				zap.String("field", ierr.Field),
				zap.String("missing_id", ierr.MissingID),
			)
		}
		skipped += len(dangling)
	} else {
		classes, err = schedule.Enrich(ds.Classes, catalog)
		if err != nil {
			s.metrics.AddIntegrityErrors(1)
			var ierr *schedule.IntegrityError
			errors.As(err, &ierr)
			return nil, appErrors.WithDetails(appErrors.Wrap(err, appErrors.ErrIntegrity.Code, appErrors.ErrIntegrity.Status, appErrors.ErrIntegrity.Message), ierr)
		}
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = i
		}
	}

	return &Snapshot{
		Source:   s.source.Name(),
		LoadedAt: s.now().UTC(),
		Courses:  nonNil(ds.Courses),
		Teachers: nonNil(ds.Teachers),
		Rooms:    nonNil(ds.Rooms),
		Classes:  classes,
		Periods:  schedule.Periods(records(classes)),
		Skipped:  skipped,
		catalog:  catalog,
		classes:  index,
	}, nil
}

func records(classes []models.EnrichedClass) []models.ClassRecord {
	out := make([]models.ClassRecord, len(classes))
	for i, c := range classes {
		out[i] = c.ClassRecord
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
