package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned for strings that are not zero-padded HH:MM.
var ErrInvalidClock = errors.New("invalid clock time")

// MinutesPerDay bounds every minute-of-day value.
const MinutesPerDay = 24 * 60

// ParseClock converts a zero-padded 24-hour "HH:MM" string into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// ClockMinutes is ParseClock for values already validated upstream.
// Malformed input yields 0.
func ClockMinutes(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// MinuteOfDay returns t's minutes since midnight, dropping seconds.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// At returns day's date at the given "HH:MM" clock time.
func At(day time.Time, clock string) time.Time {
	m := ClockMinutes(clock)
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location())
}

// NextOccurrence returns the first moment at or after now that falls on
// weekday (0 = Sunday) at the given clock time.
func NextOccurrence(weekday int, clock string, now time.Time) time.Time {
	ahead := (weekday - int(now.Weekday()) + DaysPerWeek) % DaysPerWeek
	next := At(AddDays(now, ahead), clock)
	if next.Before(now) {
		next = At(AddDays(now, ahead+DaysPerWeek), clock)
	}
	return next
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
