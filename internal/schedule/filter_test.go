package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

func filterFixture() []models.EnrichedClass {
	a := class("a", 1, "08:00", "10:00")
	a.Title = "Programação Web"

	b := class("b", 2, "08:00", "11:00")
	b.CourseID, b.Course = "2", models.Course{ID: "2", Name: "Eletrônica"}
	b.TeacherID, b.Teacher = "2", models.Teacher{ID: "2", Name: "Prof. Maria Santos"}
	b.Title = "Circuitos Digitais"
	b.Room = models.Room{ID: "4", Name: "Lab. Eletrônica", Kind: models.RoomLaboratory}

	c := class("c", 3, "14:00", "17:00")
	c.Title = "Banco de Dados"
	c.Period = strPtr("2026.2")

	d := class("d", 4, "08:00", "12:00")
	d.Period = nil
	d.Title = "Mecânica Básica"
	d.CourseID, d.Course = "3", models.Course{ID: "3", Name: "Mecânica"}
	return []models.EnrichedClass{a, b, c, d}
}

func TestApplyFiltersEmptyCriteriaKeepsAll(t *testing.T) {
	records := filterFixture()
	got := ApplyFilters(records, models.FilterCriteria{})
	assert.Equal(t, records, got)
}

func TestApplyFiltersByIDs(t *testing.T) {
	records := filterFixture()
	assert.Equal(t, []string{"a", "c"}, ids(ApplyFilters(records, models.FilterCriteria{CourseID: "1"})))
	assert.Equal(t, []string{"b"}, ids(ApplyFilters(records, models.FilterCriteria{TeacherID: "2"})))
	assert.Equal(t, []string{"c"}, ids(ApplyFilters(records, models.FilterCriteria{Period: "2026.2"})))
	assert.Empty(t, ApplyFilters(records, models.FilterCriteria{CourseID: "2", TeacherID: "1"}))
}

func TestApplyFiltersSearchIsCaseInsensitive(t *testing.T) {
	records := filterFixture()
	assert.Equal(t, []string{"b"}, ids(ApplyFilters(records, models.FilterCriteria{Search: "CIRCUITOS"})))
	assert.Equal(t, []string{"b"}, ids(ApplyFilters(records, models.FilterCriteria{Search: "maria"})))
	assert.Equal(t, []string{"a", "c", "d"}, ids(ApplyFilters(records, models.FilterCriteria{Search: "informática"})))
	assert.Equal(t, []string{"d"}, ids(ApplyFilters(records, models.FilterCriteria{Search: "mecânica"})))
}

func TestApplyFiltersSearchDoesNotRescueRejectedRecords(t *testing.T) {
	records := filterFixture()
	got := ApplyFilters(records, models.FilterCriteria{CourseID: "1", Search: "circuitos"})
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got = ApplyFilters(records, models.FilterCriteria{CourseID: "1", Search: "banco"})
	assert.Equal(t, []string{"c"}, ids(got))
}

func TestApplyFiltersIsSubsetInOrder(t *testing.T) {
	records := filterFixture()
	criteria := []models.FilterCriteria{
		{CourseID: "1"},
		{Search: "lab"},
		{Period: "2026.1", Search: "prof"},
		{TeacherID: "9"},
	}
	for _, c := range criteria {
		got := ApplyFilters(records, c)
		pos := 0
		for _, rec := range got {
			for pos < len(records) && records[pos].ID != rec.ID {
				pos++
			}
			assert.Less(t, pos, len(records), "record %s not in input order", rec.ID)
			pos++
		}
	}
}

func TestPeriods(t *testing.T) {
	records := make([]models.ClassRecord, 0)
	for _, rec := range filterFixture() {
		records = append(records, rec.ClassRecord)
	}
	assert.Equal(t, []string{"2026.1", "2026.2"}, Periods(records))
	assert.Equal(t, []string{}, Periods(nil))
}
