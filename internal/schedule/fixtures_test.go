package schedule

import (
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// 2026-10-19 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, time.October, 19, hour, minute, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func class(id string, day int, start, end string) models.EnrichedClass {
	return models.EnrichedClass{
		ClassRecord: models.ClassRecord{
			ID:        id,
			CourseID:  "1",
			TeacherID: "1",
			RoomID:    "3",
			Title:     "Programação Web",
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
			Period:    strPtr("2026.1"),
		},
		Course:  models.Course{ID: "1", Name: "Desenvolvimento de Sistemas"},
		Teacher: models.Teacher{ID: "1", Name: "Prof. João Silva"},
		Room:    models.Room{ID: "3", Name: "Lab. Informática 1", Kind: models.RoomLaboratory},
	}
}

func ids(records []models.EnrichedClass) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

// weekFixture mirrors the kiosk's demo week.
func weekFixture() []models.EnrichedClass {
	return []models.EnrichedClass{
		class("1", 1, "08:00", "10:00"),
		class("2", 1, "10:15", "12:15"),
		class("3", 2, "08:00", "11:00"),
		class("4", 2, "14:00", "17:00"),
		class("5", 3, "14:00", "17:00"),
		class("6", 4, "08:00", "12:00"),
		class("7", 5, "13:00", "17:00"),
	}
}
