package schedule

import (
	"sort"
	"time"

	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
)

// Relevant keeps classes on a later weekday than now, and classes on now's
// weekday whose start minute has not passed. A class that already started is
// dropped even while it is still running.
func Relevant(records []models.EnrichedClass, now time.Time) []models.EnrichedClass {
	today := int(now.Weekday())
	current := calendar.MinuteOfDay(now)

	out := make([]models.EnrichedClass, 0, len(records))
	for _, rec := range records {
		switch {
		case rec.DayOfWeek > today:
			out = append(out, rec)
		case rec.DayOfWeek == today && calendar.ClockMinutes(rec.StartTime) >= current:
			out = append(out, rec)
		}
	}
	return out
}

// TimeSlots returns the distinct (start, end) pairs ordered by start time,
// then end time.
func TimeSlots(records []models.EnrichedClass) []models.TimeSlot {
	seen := make(map[models.TimeSlot]struct{}, len(records))
	slots := make([]models.TimeSlot, 0, len(records))
	for _, rec := range records {
		slot := models.TimeSlot{StartTime: rec.StartTime, EndTime: rec.EndTime}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		slots = append(slots, slot)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		si, sj := calendar.ClockMinutes(slots[i].StartTime), calendar.ClockMinutes(slots[j].StartTime)
		if si != sj {
			return si < sj
		}
		return calendar.ClockMinutes(slots[i].EndTime) < calendar.ClockMinutes(slots[j].EndTime)
	})
	return slots
}

// ClassesAt returns the classes on day's weekday whose times equal the slot
// exactly, in input order. More than one match means duplicated data;
// callers show index 0 but must keep the rest.
func ClassesAt(records []models.EnrichedClass, startTime, endTime string, day time.Time) []models.EnrichedClass {
	weekday := int(day.Weekday())
	out := make([]models.EnrichedClass, 0)
	for _, rec := range records {
		if rec.DayOfWeek == weekday && rec.StartTime == startTime && rec.EndTime == endTime {
			out = append(out, rec)
		}
	}
	return out
}

// ClassesOnDay returns the classes on day's weekday, in input order.
func ClassesOnDay(records []models.EnrichedClass, day time.Time) []models.EnrichedClass {
	weekday := int(day.Weekday())
	out := make([]models.EnrichedClass, 0)
	for _, rec := range records {
		if rec.DayOfWeek == weekday {
			out = append(out, rec)
		}
	}
	return out
}

// HasClassesOnDay reports whether any class meets on day's weekday.
func HasClassesOnDay(records []models.EnrichedClass, day time.Time) bool {
	weekday := int(day.Weekday())
	for _, rec := range records {
		if rec.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

// GroupByDay buckets classes by weekday, Sunday first. Every bucket is
// non-nil and keeps input order.
func GroupByDay(records []models.EnrichedClass) [calendar.DaysPerWeek][]models.EnrichedClass {
	var buckets [calendar.DaysPerWeek][]models.EnrichedClass
	for i := range buckets {
		buckets[i] = make([]models.EnrichedClass, 0)
	}
	for _, rec := range records {
		if rec.DayOfWeek < 0 || rec.DayOfWeek >= calendar.DaysPerWeek {
			continue
		}
		buckets[rec.DayOfWeek] = append(buckets[rec.DayOfWeek], rec)
	}
	return buckets
}

// NextDays returns n consecutive midnights starting with now's day, in now's
// location.
func NextDays(n int, now time.Time) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	today := calendar.Midnight(now)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = calendar.AddDays(today, i)
	}
	return days
}

// RelativeDayLabel names date relative to now: today, tomorrow, or the
// weekday. Time of day is ignored on both sides.
func RelativeDayLabel(date, now time.Time, locale *format.Locale) string {
	if locale == nil {
		locale = format.PtBR
	}
	switch calendar.DaysBetween(now, date) {
	case 0:
		return locale.Today()
	case 1:
		return locale.Tomorrow()
	default:
		return locale.DayLabel(int(date.Weekday()))
	}
}
