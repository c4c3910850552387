// Command kiosk-seed imports a YAML schedule into the configured SQL
// database and can render a course timetable to a file. With -dump it runs
// the other way and writes the database contents to a YAML file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/internal/repository"
	"github.com/noah-isme/course-kiosk-api/internal/service"
	"github.com/noah-isme/course-kiosk-api/pkg/config"
	"github.com/noah-isme/course-kiosk-api/pkg/database"
	"github.com/noah-isme/course-kiosk-api/pkg/export"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
	"github.com/noah-isme/course-kiosk-api/pkg/logger"
	"github.com/noah-isme/course-kiosk-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	seedFile := flag.String("file", cfg.SeedFile, "YAML schedule to import")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing to the database")
	courseID := flag.String("export-course", "", "render this course's timetable after importing")
	exportFormat := flag.String("format", "pdf", "export format: csv, pdf, xlsx or ics")
	out := flag.String("out", "", "export destination (defaults to EXPORT_DIR/<generated name>)")
	dump := flag.String("dump", "", "write the database contents to this YAML file and exit")
	keep := flag.Duration("keep", 7*24*time.Hour, "prune exports in EXPORT_DIR older than this")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *dump != "" {
		dumpDatabase(ctx, cfg, *dump, logr)
		return
	}

	yamlSource := repository.NewYAMLSource(*seedFile)
	ds, err := yamlSource.Load(ctx)
	if err != nil {
		logr.Fatal("failed to read seed", zap.Error(err))
	}

	// Validate and enrich through the same path the API uses.
	catalog := service.NewCatalogService(yamlSource, validator.New(), nil, logr, service.CatalogOptions{})
	result, err := catalog.Reload(ctx)
	if err != nil {
		logr.Fatal("seed rejected", zap.Error(err))
	}
	logr.Info("seed validated",
		zap.Int("courses", result.Courses),
		zap.Int("teachers", result.Teachers),
		zap.Int("rooms", result.Rooms),
		zap.Int("classes", result.Classes),
	)

	if !*dryRun {
		importSeed(ctx, cfg, ds, logr)
	}

	if *courseID != "" {
		exportCourse(ctx, cfg, catalog, *courseID, *exportFormat, *out, *keep, logr)
	}
}

func importSeed(ctx context.Context, cfg *config.Config, ds models.Dataset, logr *zap.Logger) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("data_source", cfg.DataSource), zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to prepare schema", zap.Error(err))
	}
	if err := repository.NewSQLSource(db).Save(ctx, ds); err != nil {
		logr.Fatal("import failed", zap.Error(err))
	}
	logr.Info("seed imported", zap.String("driver", cfg.Database.Driver))
}

func dumpDatabase(ctx context.Context, cfg *config.Config, path string, logr *zap.Logger) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("data_source", cfg.DataSource), zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	ds, err := repository.NewSQLSource(db).Load(ctx)
	if err != nil {
		logr.Fatal("failed to read database", zap.Error(err))
	}
	if err := repository.NewYAMLSource(path).Save(ctx, ds); err != nil {
		logr.Fatal("dump failed", zap.Error(err))
	}
	logr.Info("database dumped",
		zap.String("path", path),
		zap.Int("courses", len(ds.Courses)),
		zap.Int("classes", len(ds.Classes)),
	)
}

func exportCourse(ctx context.Context, cfg *config.Config, catalog *service.CatalogService, courseID, rawFormat, out string, keep time.Duration, logr *zap.Logger) {
	f, err := export.ParseFormat(rawFormat)
	if err != nil {
		logr.Fatal("invalid export format", zap.Error(err))
	}
	locale := format.MustLookup(cfg.Kiosk.Locale)
	loc := cfg.Kiosk.Location()
	schedule := service.NewScheduleService(catalog, nil, nil, logr, service.ScheduleOptions{
		Locale:       locale,
		Location:     loc,
		UpcomingDays: cfg.Kiosk.UpcomingDays,
	})
	exporter := service.NewExportService(schedule, service.DefaultRenderers(), locale, loc, logr)

	result, err := exporter.ExportCourse(ctx, courseID, f, 0, time.Now())
	if err != nil {
		logr.Fatal("export failed", zap.Error(err))
	}
	if out != "" {
		if err := os.WriteFile(out, result.Payload, 0o644); err != nil {
			logr.Fatal("failed to write export", zap.Error(err))
		}
		logr.Info("timetable written", zap.String("path", out), zap.Int("bytes", len(result.Payload)))
		return
	}

	store, err := storage.NewLocalStorage(cfg.Kiosk.ExportDir)
	if err != nil {
		logr.Fatal("failed to open export directory", zap.Error(err))
	}
	if keep > 0 {
		pruned, err := store.CleanupOlderThan(keep, time.Now())
		if err != nil {
			logr.Warn("export cleanup failed", zap.Error(err))
		} else if len(pruned) > 0 {
			logr.Info("old exports removed", zap.Strings("files", pruned))
		}
	}
	path, err := store.Save(result.Filename, result.Payload)
	if err != nil {
		logr.Fatal("failed to write export", zap.Error(err))
	}
	logr.Info("timetable written", zap.String("path", path), zap.Int("bytes", len(result.Payload)))
}
