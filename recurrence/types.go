// Package recurrence connects compiled RRULEs to iCalendar components: it
// pulls RRULE, RDATE, EXDATE and RECURRENCE-ID out of a component, evaluates
// them with the schedule package or, for DTSTART-anchored expansion, with
// rrule-go, and caches the results.
package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// Info holds the recurrence properties of one calendar component.
type Info struct {
	Rule         string      // RRULE value, without the "RRULE:" name
	RDates       []time.Time // extra occurrence dates
	ExDates      []time.Time // excluded occurrence dates
	RecurrenceID mo.Option[time.Time]
}

// IsRecurring reports whether the component repeats at all.
func (i Info) IsRecurring() bool {
	return i.Rule != "" || len(i.RDates) > 0
}

// Occurrence is one expanded instance of a recurring component.
type Occurrence struct {
	Start time.Time
	End   time.Time
	// FromRDate is true when the instance comes from RDATE rather than the rule.
	FromRDate bool
}

// Event is a VEVENT reduced to what recurrence evaluation needs.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	HasTime bool
	Info    Info
}
