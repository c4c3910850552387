package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

func testCatalog() *MemoryCatalog {
	return NewCatalog(
		[]models.Course{{ID: "1", Name: "Desenvolvimento de Sistemas"}, {ID: "1", Name: "Duplicate"}},
		[]models.Teacher{{ID: "1", Name: "Prof. João Silva"}},
		[]models.Room{{ID: "3", Name: "Lab. Informática 1", Kind: models.RoomLaboratory}},
	)
}

func TestEnrichJoinsReferences(t *testing.T) {
	records := []models.ClassRecord{
		class("1", 1, "08:00", "10:00").ClassRecord,
		class("2", 1, "10:15", "12:15").ClassRecord,
	}

	got, err := Enrich(records, testCatalog())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Desenvolvimento de Sistemas", got[0].Course.Name)
	assert.Equal(t, "Prof. João Silva", got[0].Teacher.Name)
	assert.Equal(t, "Lab. Informática 1", got[1].Room.Name)
	assert.Equal(t, records[1], got[1].ClassRecord)
}

func TestEnrichFailsOnMissingReference(t *testing.T) {
	broken := class("9", 1, "08:00", "10:00").ClassRecord
	broken.TeacherID = "42"
	broken.RoomID = "77"

	got, err := Enrich([]models.ClassRecord{class("1", 1, "08:00", "10:00").ClassRecord, broken}, testCatalog())
	assert.Nil(t, got)

	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, &IntegrityError{ClassID: "9", Field: "teacher_id", MissingID: "42"}, integrity)
	assert.Contains(t, err.Error(), `teacher_id "42"`)
}

func TestEnrichLenientSkipsBrokenRecords(t *testing.T) {
	broken := class("9", 1, "08:00", "10:00").ClassRecord
	broken.CourseID = "5"

	got, skipped := EnrichLenient([]models.ClassRecord{broken, class("1", 2, "08:00", "10:00").ClassRecord}, testCatalog())
	assert.Equal(t, []string{"1"}, ids(got))
	require.Len(t, skipped, 1)
	assert.Equal(t, "course_id", skipped[0].Field)
}

func TestEnrichEmptyInput(t *testing.T) {
	got, err := Enrich(nil, testCatalog())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
