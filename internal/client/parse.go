package client

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent is the intermediate representation of a VEVENT before
// recurrence expansion and normalization.
type parsedEvent struct {
	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	// Attendees after removing resources/rooms and declined invitees.
	// Zero means the feed listed nobody, which reads as a solo block.
	Attendees int

	RawRRule string
	ExDates  []time.Time

	// Recurrence carries the RECURRENCE-ID of an overridden instance.
	Recurrence *time.Time
	IsOverride bool
}

// parseFeed parses one ICS payload into parsed events. Individual broken
// VEVENTs are skipped; the payload as a whole only fails when the calendar
// itself cannot be parsed.
func parseFeed(body []byte) ([]parsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]parsedEvent, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (parsedEvent, error) {
	var out parsedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, err
	}
	out.Start = start
	out.End = end

	// All-day detection: VALUE=DATE parameter or a dateless DTSTART value.
	if dtStart := ve.GetProperty(ical.ComponentPropertyDtStart); dtStart != nil {
		if params := dtStart.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(dtStart.Value, "T") {
			out.AllDay = true
		}
	}

	out.Attendees = countAttendees(ve)

	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, terr := parseICSTime(part); terr == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if rid := ve.GetProperty("RECURRENCE-ID"); rid != nil {
		if t, terr := parseICSTime(rid.Value); terr == nil {
			out.Recurrence = &t
			out.IsOverride = true
		}
	}

	return out, nil
}

// countAttendees counts humans who did not decline. Meeting rooms and other
// booked resources are excluded so they never inflate the cost.
func countAttendees(ve *ical.VEvent) int {
	count := 0
	for _, a := range ve.Attendees() {
		params := a.ICalParameters
		if params == nil {
			count++
			continue
		}
		if vs, ok := params["CUTYPE"]; ok && len(vs) > 0 {
			if strings.EqualFold(vs[0], "RESOURCE") || strings.EqualFold(vs[0], "ROOM") {
				continue
			}
		}
		if vs, ok := params["PARTSTAT"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DECLINED") {
			continue
		}
		count++
	}
	return count
}

// parseICSTime parses the basic ICS date/date-time forms used by EXDATE.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if strings.HasSuffix(v, "Z") {
		const layout = "20060102T150405Z"
		return time.Parse(layout, v)
	}

	if strings.Contains(v, "T") {
		const layout = "20060102T150405"
		return time.ParseInLocation(layout, v, time.Local)
	}

	const layoutDate = "20060102"
	return time.ParseInLocation(layoutDate, v, time.Local)
}
