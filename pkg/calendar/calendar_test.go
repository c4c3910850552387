package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	// Wednesday 2026-01-07 14:30 belongs to the week starting Sunday 2026-01-04.
	got := WeekStart(date(2026, time.January, 7, 14, 30))
	assert.Equal(t, date(2026, time.January, 4, 0, 0), got)

	// A Sunday is its own week start.
	assert.Equal(t, date(2026, time.January, 4, 0, 0), WeekStart(date(2026, time.January, 4, 23, 59)))

	// Crossing the year boundary.
	assert.Equal(t, date(2025, time.December, 28, 0, 0), WeekStart(date(2026, time.January, 1, 9, 0)))
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(date(2026, time.March, 4, 10, 0))
	require.Len(t, days, 7)
	for i, d := range days {
		assert.Equal(t, time.Weekday(i), d.Weekday())
		assert.Equal(t, 0, d.Hour())
	}
	assert.Equal(t, date(2026, time.March, 1, 0, 0), days[0])
	assert.Equal(t, date(2026, time.March, 7, 0, 0), days[6])
}

func TestWeekDaysKeepsLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	days := WeekDays(time.Date(2026, time.May, 20, 22, 0, 0, 0, loc))
	assert.Equal(t, loc, days[0].Location())
	assert.Equal(t, 17, days[0].Day())
}

func TestMonthWeeks(t *testing.T) {
	// February 2026 starts on a Sunday and ends on a Saturday: exactly four weeks.
	weeks := MonthWeeks(date(2026, time.February, 15, 0, 0))
	require.Len(t, weeks, 4)
	assert.Equal(t, date(2026, time.February, 1, 0, 0), weeks[0][0])
	assert.Equal(t, date(2026, time.February, 28, 0, 0), weeks[3][6])

	// March 2026 spans five weeks, the last one spilling into April.
	weeks = MonthWeeks(date(2026, time.March, 1, 0, 0))
	require.Len(t, weeks, 5)
	assert.Equal(t, time.April, weeks[4][6].Month())
}

func TestIsTodayAndSameWeek(t *testing.T) {
	now := date(2026, time.October, 19, 8, 0)
	assert.True(t, IsToday(date(2026, time.October, 19, 23, 59), now))
	assert.False(t, IsToday(date(2026, time.October, 20, 0, 0), now))
	assert.False(t, IsToday(date(2025, time.October, 19, 8, 0), now))

	assert.True(t, IsSameWeek(date(2026, time.October, 18, 0, 0), date(2026, time.October, 24, 23, 0)))
	assert.False(t, IsSameWeek(date(2026, time.October, 24, 23, 0), date(2026, time.October, 25, 0, 0)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2026, time.October, 19, 23, 0), date(2026, time.October, 19, 1, 0)))
	assert.Equal(t, 1, DaysBetween(date(2026, time.October, 19, 23, 59), date(2026, time.October, 20, 0, 0)))
	assert.Equal(t, -2, DaysBetween(date(2026, time.October, 19, 0, 0), date(2026, time.October, 17, 12, 0)))
	assert.Equal(t, 365, DaysBetween(date(2026, time.January, 1, 0, 0), date(2027, time.January, 1, 0, 0)))
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	before := time.Date(2026, time.March, 8, 0, 0, 0, 0, loc)
	after := time.Date(2026, time.March, 9, 0, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(before, after))
}

func TestAddHelpers(t *testing.T) {
	base := date(2026, time.December, 30, 10, 0)
	assert.Equal(t, date(2027, time.January, 2, 10, 0), AddDays(base, 3))
	assert.Equal(t, date(2026, time.December, 23, 10, 0), AddDays(base, -7))
	assert.Equal(t, date(2027, time.January, 13, 10, 0), AddWeeks(base, 2))
	assert.Equal(t, date(2027, time.February, 28, 10, 0), AddMonths(date(2026, time.December, 28, 10, 0), 2))
	assert.Equal(t, date(2026, time.March, 3, 0, 0), AddMonths(date(2026, time.January, 31, 0, 0), 1))
	assert.Equal(t, date(2025, time.November, 30, 10, 0), AddMonths(base, -13))

	// Inputs are never modified.
	assert.Equal(t, date(2026, time.December, 30, 10, 0), base)
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("08:00")
	require.NoError(t, err)
	assert.Equal(t, 480, m)

	m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"", "8:00", "24:00", "12:60", "12-00", "ab:cd", "08:00:00"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
	assert.Equal(t, 0, ClockMinutes("garbage"))
}

func TestClockHelpers(t *testing.T) {
	assert.Equal(t, 9*60+5, MinuteOfDay(time.Date(2026, 1, 1, 9, 5, 59, 0, time.UTC)))
	assert.Equal(t, "07:05", FormatClock(425))
	assert.Equal(t, date(2026, time.May, 4, 13, 30), At(date(2026, time.May, 4, 22, 10), "13:30"))
}

func TestNextOccurrence(t *testing.T) {
	now := date(2026, time.October, 19, 9, 0) // Monday

	assert.Equal(t, date(2026, time.October, 23, 13, 0), NextOccurrence(5, "13:00", now))
	assert.Equal(t, date(2026, time.October, 19, 9, 0), NextOccurrence(1, "09:00", now))
	assert.Equal(t, date(2026, time.October, 26, 8, 0), NextOccurrence(1, "08:00", now))
	assert.Equal(t, date(2026, time.October, 25, 10, 0), NextOccurrence(0, "10:00", now))
}
