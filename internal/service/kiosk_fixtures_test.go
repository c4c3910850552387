package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
)

// kioskNow is Monday 2026-10-19 09:00 UTC.
var kioskNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func kioskDataset() models.Dataset {
	class := func(id, course, teacher, room, title string, day int, start, end string) models.ClassRecord {
		return models.ClassRecord{
			ID: id, CourseID: course, TeacherID: teacher, RoomID: room, Title: title,
			DayOfWeek: day, StartTime: start, EndTime: end, Period: strPtr("2026.1"),
		}
	}
	capacity := 20
	return models.Dataset{
		Courses: []models.Course{
			{ID: "1", Name: "Desenvolvimento de Sistemas", Color: "#3B82F6", Icon: "Code"},
			{ID: "2", Name: "Eletrônica", Color: "#10B981", Icon: "Zap"},
			{ID: "3", Name: "Mecânica", Color: "#F59E0B", Icon: "Cog"},
			{ID: "4", Name: "Automação Industrial", Color: "#8B5CF6", Icon: "Settings"},
		},
		Teachers: []models.Teacher{
			{ID: "1", Name: "Prof. João Silva"},
			{ID: "2", Name: "Prof. Maria Santos"},
			{ID: "3", Name: "Prof. Carlos Oliveira"},
			{ID: "4", Name: "Prof. Ana Costa"},
		},
		Rooms: []models.Room{
			{ID: "1", Name: "Sala 101", Kind: models.RoomClassroom},
			{ID: "3", Name: "Lab. Informática 1", Kind: models.RoomLaboratory, Capacity: &capacity},
			{ID: "4", Name: "Lab. Informática 2", Kind: models.RoomLaboratory},
			{ID: "5", Name: "Oficina Mecânica", Kind: models.RoomWorkshop},
			{ID: "6", Name: "Sala 201", Kind: models.RoomClassroom},
		},
		Classes: []models.ClassRecord{
			class("1", "1", "1", "3", "Programação Web", 1, "08:00", "10:00"),
			class("2", "1", "1", "3", "Banco de Dados", 1, "10:15", "12:15"),
			class("3", "1", "2", "4", "Desenvolvimento Mobile", 2, "08:00", "11:00"),
			class("4", "1", "1", "3", "Projeto Integrador", 2, "14:00", "17:00"),
			class("5", "2", "3", "5", "Circuitos Eletrônicos", 3, "14:00", "17:00"),
			class("6", "3", "4", "5", "Mecânica Aplicada", 4, "08:00", "12:00"),
			class("7", "4", "3", "6", "Automação Industrial", 5, "13:00", "17:00"),
		},
	}
}

type sourceStub struct {
	mu    sync.Mutex
	ds    models.Dataset
	err   error
	loads int
}

func (s *sourceStub) Name() string { return "stub" }

func (s *sourceStub) Load(ctx context.Context) (models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.ds, s.err
}

// memoryCache is a CacheRepository backed by a map of JSON payloads.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

func loadedCatalog(ds models.Dataset) *CatalogService {
	svc := NewCatalogService(&sourceStub{ds: ds}, nil, nil, nil, CatalogOptions{})
	if _, err := svc.Reload(context.Background()); err != nil {
		panic(err)
	}
	return svc
}
