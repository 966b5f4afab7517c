// Package rrule parses RFC 5545 recurrence rules, checks them against the
// RFC's cross-part restrictions and compiles them into recur constraint sets.
//
//	r := rrule.ParseICalRule("RRULE:FREQ=MONTHLY;BYMONTHDAY=-1;COUNT=3")
//	if r.Err != nil { ... }
//	schedule.New(r).Next(0, time.Now())
package rrule

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Frequency is the FREQ rule part.
type Frequency string

const (
	Secondly Frequency = "SECONDLY"
	Minutely Frequency = "MINUTELY"
	Hourly   Frequency = "HOURLY"
	Daily    Frequency = "DAILY"
	Weekly   Frequency = "WEEKLY"
	Monthly  Frequency = "MONTHLY"
	Yearly   Frequency = "YEARLY"
)

var frequencies = []Frequency{Secondly, Minutely, Hourly, Daily, Weekly, Monthly, Yearly}

// Weekday numbers days Sunday=1 through Saturday=7, matching period.DayOfWeek.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayCodes = [...]string{"", "SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// String returns the two letter RFC 5545 code.
func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return strconv.Itoa(int(w))
	}
	return weekdayCodes[w]
}

func parseWeekday(code string) (Weekday, bool) {
	for i, c := range weekdayCodes {
		if i > 0 && c == code {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayNum is one BYDAY entry. Ordinal 0 means every such weekday in the
// period; otherwise it selects the nth (or nth from last, when negative).
type WeekdayNum struct {
	Ordinal int
	Weekday Weekday
}

func (w WeekdayNum) String() string {
	if w.Ordinal == 0 {
		return w.Weekday.String()
	}
	return strconv.Itoa(w.Ordinal) + w.Weekday.String()
}

// Part is a rule part the parser does not interpret, kept verbatim.
type Part struct {
	Key   string
	Value string
}

// Rule is a parsed RRULE. List parts keep input order and duplicates; a nil
// list means the part was absent.
type Rule struct {
	Freq     Frequency
	Interval mo.Option[int]
	Count    mo.Option[int]
	Until    mo.Option[time.Time]
	Wkst     mo.Option[Weekday]

	BySecond   []int
	ByMinute   []int
	ByHour     []int
	ByDay      []WeekdayNum
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByMonth    []int
	BySetPos   []int

	Extra []Part

	// untilDate records a date-only UNTIL so String can round-trip it.
	untilDate bool
}

const (
	untilDateLayout  = "20060102"
	untilLocalLayout = "20060102T150405"
	untilUTCLayout   = "20060102T150405Z"
)

// String renders the rule as a canonical RRULE content line.
func (r *Rule) String() string {
	var parts []string
	add := func(key, value string) { parts = append(parts, key+"="+value) }

	if r.Freq != "" {
		add("FREQ", string(r.Freq))
	}
	if until, ok := r.Until.Get(); ok {
		switch {
		case r.untilDate:
			add("UNTIL", until.Format(untilDateLayout))
		case until.Location() == time.UTC:
			add("UNTIL", until.Format(untilUTCLayout))
		default:
			add("UNTIL", until.Format(untilLocalLayout))
		}
	}
	if count, ok := r.Count.Get(); ok {
		add("COUNT", strconv.Itoa(count))
	}
	if interval, ok := r.Interval.Get(); ok {
		add("INTERVAL", strconv.Itoa(interval))
	}
	for _, l := range r.lists() {
		if l.key == "BYMONTHDAY" && r.ByDay != nil {
			days := make([]string, len(r.ByDay))
			for i, d := range r.ByDay {
				days[i] = d.String()
			}
			add("BYDAY", strings.Join(days, ","))
		}
		if l.values != nil {
			add(l.key, joinInts(l.values))
		}
	}
	if wkst, ok := r.Wkst.Get(); ok {
		add("WKST", wkst.String())
	}
	for _, p := range r.Extra {
		add(p.Key, p.Value)
	}
	return "RRULE:" + strings.Join(parts, ";")
}

type intList struct {
	key    string
	values []int
}

// lists returns the integer list parts in RFC 5545 order.
func (r *Rule) lists() []intList {
	return []intList{
		{"BYSECOND", r.BySecond},
		{"BYMINUTE", r.ByMinute},
		{"BYHOUR", r.ByHour},
		{"BYMONTHDAY", r.ByMonthDay},
		{"BYYEARDAY", r.ByYearDay},
		{"BYWEEKNO", r.ByWeekNo},
		{"BYMONTH", r.ByMonth},
		{"BYSETPOS", r.BySetPos},
	}
}

func joinInts(values []int) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}
