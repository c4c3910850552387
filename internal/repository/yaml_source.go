package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// YAMLSource reads the dataset from a seed file with top-level courses,
// teachers, rooms and classes lists.
type YAMLSource struct {
	mu   sync.Mutex
	path string
}

// NewYAMLSource constructs a YAMLSource for path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) Name() string {
	return "yaml:" + s.path
}

// Load parses the seed file.
func (s *YAMLSource) Load(ctx context.Context) (models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return models.Dataset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	var ds models.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("parse seed file %s: %w", s.path, err)
	}
	return ds, nil
}

// Save writes ds to the seed file, replacing it atomically.
func (s *YAMLSource) Save(ctx context.Context, ds models.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode seed file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".seed-*.yaml")
	if err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write seed file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace seed file: %w", err)
	}
	return nil
}
