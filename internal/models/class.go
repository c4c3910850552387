package models

// ClassStatus is either computed from the wall clock or stored as an override.
type ClassStatus string

const (
	StatusScheduled  ClassStatus = "scheduled"
	StatusInProgress ClassStatus = "in_progress"
	StatusFinished   ClassStatus = "finished"
	StatusCancelled  ClassStatus = "cancelled"
)

// ClassRecord is one weekly-recurring class. DayOfWeek (0 = Sunday) and the
// HH:MM times identify the recurrence slot; Date is carried but never used
// for matching.
type ClassRecord struct {
	ID          string       `db:"id" json:"id" yaml:"id" validate:"required"`
	CourseID    string       `db:"course_id" json:"course_id" yaml:"course_id" validate:"required"`
	TeacherID   string       `db:"teacher_id" json:"teacher_id" yaml:"teacher_id" validate:"required"`
	RoomID      string       `db:"room_id" json:"room_id" yaml:"room_id" validate:"required"`
	Title       string       `db:"title" json:"title" yaml:"title" validate:"required"`
	Description *string      `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
	DayOfWeek   int          `db:"day_of_week" json:"day_of_week" yaml:"day_of_week" validate:"min=0,max=6"`
	StartTime   string       `db:"start_time" json:"start_time" yaml:"start_time" validate:"required,clock"`
	EndTime     string       `db:"end_time" json:"end_time" yaml:"end_time" validate:"required,clock"`
	Date        *string      `db:"date" json:"date,omitempty" yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Period      *string      `db:"period" json:"period,omitempty" yaml:"period,omitempty"`
	Status      *ClassStatus `db:"status" json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress finished cancelled"`
}

// PeriodValue returns the period tag or "" when unset.
func (c ClassRecord) PeriodValue() string {
	if c.Period == nil {
		return ""
	}
	return *c.Period
}

// EnrichedClass is a ClassRecord joined with its reference data.
type EnrichedClass struct {
	ClassRecord
	Course  Course  `json:"course"`
	Teacher Teacher `json:"teacher"`
	Room    Room    `json:"room"`
}

// TimeSlot is one distinct start/end band observed across a set of classes.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FilterCriteria narrows a class listing. Empty fields do not filter.
type FilterCriteria struct {
	CourseID  string `json:"course_id,omitempty"`
	TeacherID string `json:"teacher_id,omitempty"`
	Period    string `json:"period,omitempty"`
	Search    string `json:"search,omitempty"`
}
