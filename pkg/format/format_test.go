package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayNames(t *testing.T) {
	assert.Equal(t, "Domingo", DayName(0))
	assert.Equal(t, "Segunda-feira", DayName(1))
	assert.Equal(t, "Sábado", DayName(6))
	assert.Equal(t, "Seg", DayNameAbbrev(1))
	assert.Equal(t, "Sáb", DayNameAbbrev(6))

	assert.Equal(t, "Wednesday", EnUS.DayName(3))
	assert.Equal(t, "Wed", EnUS.DayNameAbbrev(3))
	assert.Equal(t, "Terça", PtBR.DayLabel(2))
}

func TestDayNamesOutOfRange(t *testing.T) {
	for _, day := range []int{-1, 7, 42} {
		assert.Empty(t, DayName(day))
		assert.Empty(t, DayNameAbbrev(day))
		assert.Empty(t, EnUS.DayLabel(day))
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 120, Duration("08:00", "10:00"))
	assert.Equal(t, 135, Duration("10:15", "12:30"))
	assert.Equal(t, 0, Duration("14:00", "14:00"))
	assert.Equal(t, -60, Duration("10:00", "09:00"))
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:   "0min",
		45:  "45min",
		60:  "1h",
		150: "2h30min",
		240: "4h",
		61:  "1h1min",
		-30: "-30min",
	}
	for minutes, want := range cases {
		assert.Equal(t, want, FormatDuration(minutes), minutes)
	}
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2026, time.January, 5, 15, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "05/01/2026", FormatDate(d))
	assert.Equal(t, "05/01/2026 - 09/01/2026", FormatDateRange(d, end))
	assert.Equal(t, "segunda-feira, 05 de janeiro de 2026", FormatFullDate(d))

	assert.Equal(t, "01/05/2026", EnUS.FormatDate(d))
	assert.Equal(t, "Monday, January 05, 2026", EnUS.FormatFullDate(d))
	assert.Equal(t, "sábado, 07 de março de 2026", PtBR.FormatFullDate(time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)))
}

func TestLookup(t *testing.T) {
	l, ok := Lookup("EN_us")
	assert.True(t, ok)
	assert.Equal(t, EnUS, l)

	_, ok = Lookup("fr-FR")
	assert.False(t, ok)
	assert.Equal(t, PtBR, MustLookup("fr-FR"))
	assert.Equal(t, "Amanhã", MustLookup("pt-BR").Tomorrow())
	assert.Equal(t, "Today", MustLookup("en").Today())
}
