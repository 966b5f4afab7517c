// Package period models calendar units (second, day, week of year, ...) as
// values that can be queried for a position within their enclosing cycle and
// searched forward or backward for a given position.
//
// All periods work at one second resolution and keep the location of the
// time they are given, so the same period serves UTC and local schedules.
package period

import (
	"time"
)

// Period is a single calendar granularity.
type Period interface {
	// Name identifies the period, e.g. "day" or "week of year (ISO)".
	Name() string
	// Range names the enclosing cycle, e.g. "month" for a day.
	Range() string
	// Val returns the position of t within its enclosing cycle.
	Val(t time.Time) int
	// IsValid reports whether t's instance has value v.
	IsValid(t time.Time, v int) bool
	// Extent returns the inclusive [min, max] positions of the cycle containing t.
	Extent(t time.Time) [2]int
	// Start returns the first second of the instance containing t.
	Start(t time.Time) time.Time
	// End returns the last second of the instance containing t.
	End(t time.Time) time.Time
	// Next returns the start of the first instance with value v that begins
	// after t's instance. When v cannot occur in the following cycle the
	// start of that cycle is returned instead, so callers must re-check the
	// result. The zero time means v never occurs again.
	Next(t time.Time, v int) time.Time
	// Prev returns the end of the last instance with value v that ends before
	// t's instance. The zero time means v never occurred.
	Prev(t time.Time, v int) time.Time
}

// Cyclic is a Period whose number of instances changes from one enclosing
// cycle to the next: days in a month, days in a year, ISO weeks in a year.
type Cyclic interface {
	Period
	// CycleStart returns the first second of the enclosing cycle containing t.
	CycleStart(t time.Time) time.Time
	// CycleEnd returns the last second of the enclosing cycle containing t.
	CycleEnd(t time.Time) time.Time
	// Nth returns the start of the instance at position n within the
	// enclosing cycle containing t. n must lie within Extent(t).
	Nth(t time.Time, n int) time.Time
}

var (
	Second         Period = second{}
	Minute         Period = minute{}
	Hour           Period = hour{}
	Day            Cyclic = day{}
	DayOfWeek      Period = dayOfWeek{}
	DayOfWeekCount Period = dayOfWeekCount{}
	DayOfYear      Cyclic = dayOfYear{}
	WeekOfMonth    Period = weekOfMonth{}
	WeekOfYear     Cyclic = weekOfYear{}
	Month          Period = month{}
	Year           Period = year{}
)

// All lists the built-in periods from finest to coarsest.
var All = []Period{
	Second, Minute, Hour, Day, DayOfWeek, DayOfWeekCount, DayOfYear,
	WeekOfMonth, WeekOfYear, Month, Year,
}
