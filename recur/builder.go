package recur

import (
	"slices"
	"time"

	"github.com/samber/mo"

	"github.com/mattdeluco/later/period"
)

// everyRange is the span Every(n) is expanded over for each built-in unit.
var everyRange = map[string][2]int{
	period.Second.Name():         {0, 59},
	period.Minute.Name():         {0, 59},
	period.Hour.Name():           {0, 23},
	period.Day.Name():            {1, 31},
	period.DayOfWeek.Name():      {1, 7},
	period.DayOfWeekCount.Name(): {1, 5},
	period.DayOfYear.Name():      {1, 366},
	period.WeekOfMonth.Name():    {1, 6},
	period.WeekOfYear.Name():     {1, 53},
	period.Month.Name():          {1, 12},
	period.Year.Name():           {1970, 2450},
}

// Builder accumulates constraint sets. It is not safe for concurrent use;
// create one per recurrence.
type Builder struct {
	schedules  []ConstraintSet
	exceptions []ConstraintSet
	except     bool
	count      mo.Option[int]
}

// New returns an empty builder positioned on the first schedule.
func New() *Builder {
	return &Builder{}
}

// Selector picks the unit a pending Every or On applies to.
type Selector struct {
	b      *Builder
	every  int
	values []int
}

// Every starts an "every n units" constraint.
func (b *Builder) Every(n int) Selector {
	return Selector{b: b, every: max(n, 1)}
}

// On starts an "on these values" constraint.
func (b *Builder) On(values ...int) Selector {
	return Selector{b: b, values: values}
}

// And starts a new set in the current list (schedules or exceptions).
func (b *Builder) And() *Builder {
	list := b.list()
	*list = append(*list, ConstraintSet{})
	return b
}

// Except switches to the exception list and starts a new set there.
func (b *Builder) Except() *Builder {
	b.except = true
	b.exceptions = append(b.exceptions, ConstraintSet{})
	return b
}

// After restricts the current set to instants strictly later than t.
func (b *Builder) After(t time.Time) *Builder {
	b.current().After = mo.Some(t)
	return b
}

// Limit caps the number of occurrences.
func (b *Builder) Limit(n int) *Builder {
	b.count = mo.Some(n)
	return b
}

// Build returns the accumulated recurrence. Empty sets are dropped.
func (b *Builder) Build() *Recurrence {
	keep := func(sets []ConstraintSet) []ConstraintSet {
		out := make([]ConstraintSet, 0, len(sets))
		for _, s := range sets {
			if !s.IsZero() {
				out = append(out, s)
			}
		}
		return out
	}
	return &Recurrence{
		Schedules:  keep(b.schedules),
		Exceptions: keep(b.exceptions),
		Count:      b.count,
	}
}

func (b *Builder) list() *[]ConstraintSet {
	if b.except {
		return &b.exceptions
	}
	return &b.schedules
}

func (b *Builder) current() *ConstraintSet {
	list := b.list()
	if len(*list) == 0 {
		*list = append(*list, ConstraintSet{})
	}
	return &(*list)[len(*list)-1]
}

// add merges values into p's constraint on the current set, skipping values
// already present and keeping first-seen order.
func (b *Builder) add(p period.Period, values []int) {
	set := b.current()
	i := slices.IndexFunc(set.Constraints, func(c Constraint) bool {
		return c.Period.Name() == p.Name()
	})
	if i < 0 {
		set.Constraints = append(set.Constraints, Constraint{Period: p})
		i = len(set.Constraints) - 1
	}
	con := &set.Constraints[i]
	for _, v := range values {
		if !slices.Contains(con.Values, v) {
			con.Values = append(con.Values, v)
		}
	}
}

// Period registers the pending constraint against p. Every(n) is expanded
// over the unit's fixed range, or p's extent at the Unix epoch for periods
// the builder does not know.
func (s Selector) Period(p period.Period) *Builder {
	values := s.values
	if s.every > 0 {
		r, ok := everyRange[p.Name()]
		if !ok {
			r = p.Extent(time.Unix(0, 0).UTC())
		}
		values = nil
		for v := r[0]; v <= r[1]; v += s.every {
			values = append(values, v)
		}
	}
	s.b.add(p, values)
	return s.b
}

func (s Selector) Second() *Builder         { return s.Period(period.Second) }
func (s Selector) Minute() *Builder         { return s.Period(period.Minute) }
func (s Selector) Hour() *Builder           { return s.Period(period.Hour) }
func (s Selector) DayOfMonth() *Builder     { return s.Period(period.Day) }
func (s Selector) DayOfWeek() *Builder      { return s.Period(period.DayOfWeek) }
func (s Selector) DayOfWeekCount() *Builder { return s.Period(period.DayOfWeekCount) }
func (s Selector) DayOfYear() *Builder      { return s.Period(period.DayOfYear) }
func (s Selector) WeekOfMonth() *Builder    { return s.Period(period.WeekOfMonth) }
func (s Selector) WeekOfYear() *Builder     { return s.Period(period.WeekOfYear) }
func (s Selector) Month() *Builder          { return s.Period(period.Month) }
func (s Selector) Year() *Builder           { return s.Period(period.Year) }
