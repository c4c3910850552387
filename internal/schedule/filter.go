package schedule

import (
	"sort"
	"strings"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// ApplyFilters narrows records by criteria.
//
// Course, teacher and period are checked first and reject on mismatch. When a
// search term is present, a record that survived them is kept only if the
// term appears (case-insensitively) in its title or its course, teacher or
// room name. Existing kiosk clients rely on this exact order of checks.
func ApplyFilters(records []models.EnrichedClass, criteria models.FilterCriteria) []models.EnrichedClass {
	search := strings.ToLower(criteria.Search)
	out := make([]models.EnrichedClass, 0, len(records))
	for _, rec := range records {
		if matches(rec, criteria, search) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec models.EnrichedClass, criteria models.FilterCriteria, search string) bool {
	if criteria.CourseID != "" && rec.CourseID != criteria.CourseID {
		return false
	}
	if criteria.TeacherID != "" && rec.TeacherID != criteria.TeacherID {
		return false
	}
	if criteria.Period != "" && rec.PeriodValue() != criteria.Period {
		return false
	}
	if search != "" {
		return strings.Contains(strings.ToLower(rec.Title), search) ||
			strings.Contains(strings.ToLower(rec.Course.Name), search) ||
			strings.Contains(strings.ToLower(rec.Teacher.Name), search) ||
			strings.Contains(strings.ToLower(rec.Room.Name), search)
	}
	return true
}

// Periods lists the distinct period tags, sorted.
func Periods(records []models.ClassRecord) []string {
	seen := make(map[string]struct{})
	periods := make([]string, 0)
	for _, rec := range records {
		p := rec.PeriodValue()
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}
