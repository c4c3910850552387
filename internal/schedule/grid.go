package schedule

import (
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// Grid is a time-slot by day table. Cells[i][j] holds the classes for
// Slots[i] on Days[j].
type Grid struct {
	Days  []time.Time
	Slots []models.TimeSlot
	Cells [][][]models.EnrichedClass
}

// BuildGrid lays records out over the given days. Rows come from TimeSlots,
// so a slot appears even when none of the days has a class in it.
func BuildGrid(records []models.EnrichedClass, days []time.Time) Grid {
	slots := TimeSlots(records)
	cells := make([][][]models.EnrichedClass, len(slots))
	for i, slot := range slots {
		row := make([][]models.EnrichedClass, len(days))
		for j, day := range days {
			row[j] = ClassesAt(records, slot.StartTime, slot.EndTime, day)
		}
		cells[i] = row
	}
	return Grid{Days: days, Slots: slots, Cells: cells}
}

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool {
	return len(g.Slots) == 0
}
