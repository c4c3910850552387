package schedule

import (
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
)

// ResolveStatus derives a weekly class's status from the wall clock. Earlier
// weekdays are finished and later ones scheduled; on the class's own weekday
// the class is in progress during [start, end). It never yields cancelled,
// which only exists as a stored override.
func ResolveStatus(startTime, endTime string, dayOfWeek int, now time.Time) models.ClassStatus {
	today := int(now.Weekday())
	switch {
	case dayOfWeek < today:
		return models.StatusFinished
	case dayOfWeek > today:
		return models.StatusScheduled
	}

	current := calendar.MinuteOfDay(now)
	start := calendar.ClockMinutes(startTime)
	end := calendar.ClockMinutes(endTime)

	switch {
	case current < start:
		return models.StatusScheduled
	case current < end:
		return models.StatusInProgress
	default:
		return models.StatusFinished
	}
}

// StatusOf resolves the computed status of a class record.
func StatusOf(rec models.ClassRecord, now time.Time) models.ClassStatus {
	return ResolveStatus(rec.StartTime, rec.EndTime, rec.DayOfWeek, now)
}
