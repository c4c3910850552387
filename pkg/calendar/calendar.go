// Package calendar holds the week and day arithmetic used by the kiosk.
// Weeks start on Sunday, matching time.Weekday numbering (Sunday = 0).
// All functions are non-mutating and keep the location of their input.
package calendar

import "time"

// DaysPerWeek is the number of buckets in a weekly view.
const DaysPerWeek = 7

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Sunday of the week containing t.
func WeekStart(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, -int(t.Weekday()))
}

// WeekDays returns the seven days of t's week, Sunday first.
func WeekDays(t time.Time) [DaysPerWeek]time.Time {
	var days [DaysPerWeek]time.Time
	start := WeekStart(t)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthWeeks returns the Sunday-started weeks that cover t's month.
func MonthWeeks(t time.Time) [][DaysPerWeek]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	var weeks [][DaysPerWeek]time.Time
	for ws := WeekStart(first); !ws.After(last); ws = ws.AddDate(0, 0, DaysPerWeek) {
		weeks = append(weeks, WeekDays(ws))
	}
	return weeks
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// IsSameWeek reports whether a and b share a week start.
func IsSameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

// DaysBetween counts calendar days from `from` to `to`, ignoring time of
// day. The count is civil, so DST transitions never shift it.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AddDays shifts t by whole calendar days, keeping the wall-clock time.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// AddWeeks shifts t by whole weeks.
func AddWeeks(t time.Time, weeks int) time.Time {
	return AddDays(t, weeks*DaysPerWeek)
}

// AddMonths shifts t by whole months. Overflowing days roll into the
// following month (Jan 31 + 1 month = Mar 2 or 3).
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}
