package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Event is one weekly-recurring class occurrence. Start is the first
// occurrence; the event repeats every week from there.
type Event struct {
	UID         string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// CalendarExporter renders events as an iCalendar feed.
type CalendarExporter struct {
	productID string
	now       func() time.Time
}

// NewCalendarExporter builds an exporter stamping events with the wall clock.
func NewCalendarExporter(productID string) *CalendarExporter {
	return &CalendarExporter{productID: productID, now: time.Now}
}

const icalLocalFormat = "20060102T150405"

// Render emits one VEVENT with RRULE:FREQ=WEEKLY per event. Events whose
// start carries a named zone are written as local times with a TZID so the
// recurrence keeps its wall-clock hour across DST changes. UTC and Local
// starts are written in UTC.
func (e *CalendarExporter) Render(events []Event) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	if e.productID != "" {
		cal.SetProductId(e.productID)
	}

	stamp := e.now().UTC()
	zoned := false
	for _, ev := range events {
		if ev.UID == "" {
			return nil, fmt.Errorf("event %q has no uid", ev.Summary)
		}
		if !ev.End.After(ev.Start) {
			return nil, fmt.Errorf("event %s must end after it starts", ev.UID)
		}
		vevent := cal.AddEvent(ev.UID)
		vevent.SetDtStampTime(stamp)
		if tzid := zoneID(ev.Start.Location()); tzid != "" {
			if !zoned {
				cal.SetXWRTimezone(tzid)
				zoned = true
			}
			param := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{tzid}}
			vevent.SetProperty(ics.ComponentPropertyDtStart, ev.Start.Format(icalLocalFormat), param)
			vevent.SetProperty(ics.ComponentPropertyDtEnd, ev.End.In(ev.Start.Location()).Format(icalLocalFormat), param)
		} else {
			vevent.SetStartAt(ev.Start)
			vevent.SetEndAt(ev.End)
		}
		vevent.SetSummary(ev.Summary)
		if ev.Location != "" {
			vevent.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		vevent.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
	}
	return []byte(cal.Serialize()), nil
}

// zoneID returns the IANA name of loc, or "" when times should be written
// in UTC.
func zoneID(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	switch name := loc.String(); name {
	case "UTC", "Local", "":
		return ""
	default:
		return name
	}
}
