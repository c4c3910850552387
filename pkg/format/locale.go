// Package format turns day indices, clock strings and dates into the labels
// shown on the kiosk.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Locale carries the lookup tables for one display language.
type Locale struct {
	Tag string

	dayNames   [7]string
	dayAbbrevs [7]string
	dayLabels  [7]string
	monthNames [12]string
	today      string
	tomorrow   string
	timeHeader string
	dateLayout string
	fullDate   func(l *Locale, t time.Time) string
}

// PtBR is the kiosk's default locale.
var PtBR = &Locale{
	Tag:        "pt-BR",
	dayNames:   [7]string{"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado"},
	dayAbbrevs: [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
	dayLabels:  [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"},
	monthNames: [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	today:      "Hoje",
	tomorrow:   "Amanhã",
	timeHeader: "Horário",
	dateLayout: "02/01/2006",
	fullDate: func(l *Locale, t time.Time) string {
		// segunda-feira, 05 de janeiro de 2026
		return fmt.Sprintf("%s, %02d de %s de %d",
			strings.ToLower(l.dayNames[t.Weekday()]), t.Day(), l.monthNames[t.Month()-1], t.Year())
	},
}

// EnUS is the English (United States) locale.
var EnUS = &Locale{
	Tag:        "en-US",
	dayNames:   [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	dayAbbrevs: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	dayLabels:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	monthNames: [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	today:      "Today",
	tomorrow:   "Tomorrow",
	timeHeader: "Time",
	dateLayout: "01/02/2006",
	fullDate: func(l *Locale, t time.Time) string {
		// Monday, January 05, 2026
		return fmt.Sprintf("%s, %s %02d, %d", l.dayNames[t.Weekday()], l.monthNames[t.Month()-1], t.Day(), t.Year())
	},
}

var locales = map[string]*Locale{
	"pt-br": PtBR,
	"pt":    PtBR,
	"en-us": EnUS,
	"en":    EnUS,
}

// Lookup resolves a BCP 47 style tag. Matching is case-insensitive and
// accepts "_" in place of "-".
func Lookup(tag string) (*Locale, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	l, ok := locales[key]
	return l, ok
}

// MustLookup returns the locale for tag, or PtBR when tag is unknown.
func MustLookup(tag string) *Locale {
	if l, ok := Lookup(tag); ok {
		return l
	}
	return PtBR
}

// DayName returns the full weekday name for a 0..6 index, "" otherwise.
func (l *Locale) DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return l.dayNames[day]
}

// DayNameAbbrev returns the three-letter weekday name for a 0..6 index, "" otherwise.
func (l *Locale) DayNameAbbrev(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return l.dayAbbrevs[day]
}

// DayLabel is the short weekday name used in relative day labels.
func (l *Locale) DayLabel(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return l.dayLabels[day]
}

// Today is the relative label for the current day.
func (l *Locale) Today() string { return l.today }

// Tomorrow is the relative label for the next day.
func (l *Locale) Tomorrow() string { return l.tomorrow }

// TimeHeader labels the time-slot column of a timetable.
func (l *Locale) TimeHeader() string { return l.timeHeader }

// FormatDate renders t as a numeric date (dd/mm/yyyy for pt-BR).
func (l *Locale) FormatDate(t time.Time) string {
	return t.Format(l.dateLayout)
}

// FormatDateRange renders "start - end".
func (l *Locale) FormatDateRange(start, end time.Time) string {
	return l.FormatDate(start) + " - " + l.FormatDate(end)
}

// FormatFullDate renders t with long weekday and month names.
func (l *Locale) FormatFullDate(t time.Time) string {
	return l.fullDate(l, t)
}

func DayName(day int) string                      { return PtBR.DayName(day) }
func DayNameAbbrev(day int) string                { return PtBR.DayNameAbbrev(day) }
func FormatDate(t time.Time) string               { return PtBR.FormatDate(t) }
func FormatDateRange(start, end time.Time) string { return PtBR.FormatDateRange(start, end) }
func FormatFullDate(t time.Time) string           { return PtBR.FormatFullDate(t) }
