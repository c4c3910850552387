package format

import (
	"fmt"

	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
)

// Duration returns end minus start in minutes for two "HH:MM" values.
// A misordered pair yields a negative value.
func Duration(startTime, endTime string) int {
	return calendar.ClockMinutes(endTime) - calendar.ClockMinutes(startTime)
}

// FormatDuration renders minutes as "2h30min", "1h" or "45min".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh%dmin", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dmin", mins)
	}
}
