package recurrence

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102T150405"
	utcLayout      = "20060102T150405Z"
)

// ExtractInfo extracts recurrence information from an iCal component.
// Values that cannot be parsed are skipped.
func ExtractInfo(comp *ical.Component) Info {
	info := Info{}

	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil && prop.Value != "" {
		info.Rule = prop.Value
	}
	for _, prop := range comp.Props[ical.PropRecurrenceDates] {
		info.RDates = append(info.RDates, parseDateList(prop.Value, prop.Params)...)
	}
	for _, prop := range comp.Props[ical.PropExceptionDates] {
		info.ExDates = append(info.ExDates, parseDateList(prop.Value, prop.Params)...)
	}
	if prop := comp.Props.Get("RECURRENCE-ID"); prop != nil && prop.Value != "" {
		if id, err := parseDateTime(prop.Value, prop.Params); err == nil {
			info.RecurrenceID = mo.Some(id)
		}
	}
	return info
}

// ExtractTimes extracts start and end times from an iCal component. For a
// VTODO without DTSTART the DUE time is used.
func ExtractTimes(comp *ical.Component) (start, end time.Time, hasTime bool) {
	if dtstart, err := comp.Props.DateTime(ical.PropDateTimeStart, nil); err == nil {
		start = dtstart
		hasTime = true

		if dtend, err := comp.Props.DateTime(ical.PropDateTimeEnd, nil); err == nil {
			end = dtend
			// An all-day event whose DTEND equals DTSTART lasts the whole day.
			if isMidnight(start) && sameDate(start, end) {
				end = start.AddDate(0, 0, 1)
			}
		} else if prop := comp.Props.Get(ical.PropDuration); prop != nil {
			duration, err := prop.Duration()
			if err != nil {
				return time.Time{}, time.Time{}, false
			}
			end = start.Add(duration)
		} else if isMidnight(start) {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	}

	if comp.Name == ical.CompToDo {
		if due, err := comp.Props.DateTime(ical.PropDue, nil); err == nil {
			switch {
			case !hasTime:
				start, end, hasTime = due, due, true
			case due.After(end):
				end = due
			}
		}
	}
	return start, end, hasTime
}

// EventsFromCalendar decodes every VCALENDAR in r and returns its VEVENTs.
func EventsFromCalendar(r io.Reader) ([]Event, error) {
	dec := ical.NewDecoder(r)

	var events []Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}
		for _, ev := range cal.Events() {
			events = append(events, eventFromComponent(ev.Component))
		}
	}
	return events, nil
}

func eventFromComponent(comp *ical.Component) Event {
	ev := Event{Info: ExtractInfo(comp)}
	ev.UID, _ = comp.Props.Text(ical.PropUID)
	ev.Summary, _ = comp.Props.Text(ical.PropSummary)
	ev.Start, ev.End, ev.HasTime = ExtractTimes(comp)
	return ev
}

// parseDateList parses a comma separated RDATE or EXDATE value.
func parseDateList(value string, params ical.Params) []time.Time {
	var out []time.Time
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if t, err := parseDateTime(s, params); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// parseDateTime parses an iCalendar DATE or DATE-TIME. Dates become midnight
// UTC; floating times use the TZID parameter when present and UTC otherwise.
func parseDateTime(value string, params ical.Params) (time.Time, error) {
	if strings.EqualFold(params.Get(ical.ParamValue), "DATE") || len(value) == len(dateLayout) {
		return time.Parse(dateLayout, value)
	}
	if strings.HasSuffix(value, "Z") {
		return time.Parse(utcLayout, value)
	}
	loc := time.UTC
	if tzid := params.Get(ical.ParamTimezoneID); tzid != "" {
		l, err := time.LoadLocation(tzid)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q: %w", tzid, err)
		}
		loc = l
	}
	return time.ParseInLocation(dateTimeLayout, value, loc)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
