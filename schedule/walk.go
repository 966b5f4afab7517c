package schedule

import (
	"time"

	"github.com/mattdeluco/later/recur"
)

type direction bool

const (
	forward  direction = true
	backward direction = false
)

// before reports whether a comes first when walking in direction d.
func (d direction) before(a, b time.Time) bool {
	if d == forward {
		return a.Before(b)
	}
	return a.After(b)
}

// further returns whichever of a and b lies further along direction d.
func (d direction) further(a, b time.Time) time.Time {
	if d.before(a, b) {
		return b
	}
	return a
}

// find returns the occurrence of set nearest to t in direction d, t included.
func (d direction) find(set recur.ConstraintSet, t time.Time) time.Time {
	if d == forward {
		return nextIn(set, t)
	}
	last := prevIn(set, t)
	if last.IsZero() {
		return last
	}
	// Report the first matching second of the instance, as walking forward does.
	start, _ := span(set, last)
	if first := nextIn(set, start); !first.IsZero() && !first.After(last) {
		return first
	}
	return last
}

// tick returns the first instant past the finest constrained instance
// containing t.
func (d direction) tick(set recur.ConstraintSet, t time.Time) time.Time {
	start, end := span(set, t)
	if d == forward {
		return end.Add(time.Second)
	}
	return start.Add(-time.Second)
}

// escape returns the nearest instant past t, in direction d, at which the
// exception ex might no longer hold. ok is false when ex holds for good.
func (d direction) escape(ex recur.ConstraintSet, t time.Time) (time.Time, bool) {
	if len(ex.Constraints) == 0 {
		if d == forward {
			return time.Time{}, false
		}
		return ex.After.Get()
	}
	var out time.Time
	for _, c := range ex.Constraints {
		var edge time.Time
		if d == forward {
			edge = c.Period.End(t).Add(time.Second)
		} else {
			edge = c.Period.Start(t).Add(-time.Second)
		}
		if out.IsZero() || d.before(edge, out) {
			out = edge
		}
	}
	if a, ok := ex.After.Get(); ok && d == backward && a.After(out) {
		out = a
	}
	return out, true
}

// nextIn returns the earliest instant at or after t matching set.
func nextIn(set recur.ConstraintSet, t time.Time) time.Time {
	if set.IsZero() {
		return time.Time{}
	}
	for i := 0; i < maxIterations; i++ {
		if !inRange(t) {
			return time.Time{}
		}
		if a, ok := set.After.Get(); ok && !t.After(a) {
			t = a.Truncate(time.Second).Add(time.Second).In(t.Location())
			continue
		}
		c, ok := unsatisfied(set, t)
		if !ok {
			return t
		}
		var next time.Time
		for _, v := range c.Values {
			n := c.Period.Next(t, v)
			if !n.IsZero() && n.After(t) && (next.IsZero() || n.Before(next)) {
				next = n
			}
		}
		if next.IsZero() {
			return next
		}
		t = next
	}
	return time.Time{}
}

// prevIn returns the latest instant at or before t matching set.
func prevIn(set recur.ConstraintSet, t time.Time) time.Time {
	if set.IsZero() {
		return time.Time{}
	}
	for i := 0; i < maxIterations; i++ {
		if !inRange(t) {
			return time.Time{}
		}
		if a, ok := set.After.Get(); ok && !t.After(a) {
			return time.Time{}
		}
		c, ok := unsatisfied(set, t)
		if !ok {
			return t
		}
		var prev time.Time
		for _, v := range c.Values {
			p := c.Period.Prev(t, v)
			if !p.IsZero() && p.Before(t) && (prev.IsZero() || p.After(prev)) {
				prev = p
			}
		}
		if prev.IsZero() {
			return prev
		}
		t = prev
	}
	return time.Time{}
}

func unsatisfied(set recur.ConstraintSet, t time.Time) (recur.Constraint, bool) {
	for _, c := range set.Constraints {
		if !satisfied(c, t) {
			return c, true
		}
	}
	return recur.Constraint{}, false
}

// span returns the bounds of the shortest constrained instance containing t,
// or t itself when set has no constraints.
func span(set recur.ConstraintSet, t time.Time) (start, end time.Time) {
	start, end = t, t
	shortest := time.Duration(-1)
	for _, c := range set.Constraints {
		s, e := c.Period.Start(t), c.Period.End(t)
		if d := e.Sub(s); shortest < 0 || d < shortest {
			start, end, shortest = s, e, d
		}
	}
	return start, end
}
