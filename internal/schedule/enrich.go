package schedule

import (
	"fmt"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// IntegrityError reports a class whose foreign key has no matching record.
type IntegrityError struct {
	ClassID   string `json:"class_id"`
	Field     string `json:"field"`
	MissingID string `json:"missing_id"`
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("class %s: %s %q not found", e.ClassID, e.Field, e.MissingID)
}

// Enrich joins every record with its course, teacher and room. The first
// unresolved reference fails the whole batch.
func Enrich(records []models.ClassRecord, catalog Catalog) ([]models.EnrichedClass, error) {
	out := make([]models.EnrichedClass, 0, len(records))
	for _, rec := range records {
		enriched, err := enrichOne(rec, catalog)
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	return out, nil
}

// EnrichLenient joins what it can and returns the records it had to skip.
func EnrichLenient(records []models.ClassRecord, catalog Catalog) ([]models.EnrichedClass, []*IntegrityError) {
	out := make([]models.EnrichedClass, 0, len(records))
	var skipped []*IntegrityError
	for _, rec := range records {
		enriched, err := enrichOne(rec, catalog)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		out = append(out, enriched)
	}
	return out, skipped
}

func enrichOne(rec models.ClassRecord, catalog Catalog) (models.EnrichedClass, *IntegrityError) {
	course, ok := catalog.Course(rec.CourseID)
	if !ok {
		return models.EnrichedClass{}, &IntegrityError{ClassID: rec.ID, Field: "course_id", MissingID: rec.CourseID}
	}
	teacher, ok := catalog.Teacher(rec.TeacherID)
	if !ok {
		return models.EnrichedClass{}, &IntegrityError{ClassID: rec.ID, Field: "teacher_id", MissingID: rec.TeacherID}
	}
	room, ok := catalog.Room(rec.RoomID)
	if !ok {
		return models.EnrichedClass{}, &IntegrityError{ClassID: rec.ID, Field: "room_id", MissingID: rec.RoomID}
	}
	return models.EnrichedClass{ClassRecord: rec, Course: course, Teacher: teacher, Room: room}, nil
}
