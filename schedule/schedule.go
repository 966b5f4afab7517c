// Package schedule walks calendar time to find the instants a compiled
// recurrence occurs at.
//
// An occurrence is the first matching second of an instance of the finest
// period a schedule constrains. Searching forward from a time inside such an
// instance yields that time itself, so
//
//	schedule.New(rrule.ParseICalRule("RRULE:FREQ=HOURLY;COUNT=3")).Next(0, t)
//
// returns t, then the top of each following hour.
package schedule

import (
	"time"

	"github.com/mattdeluco/later/recur"
)

const (
	// maxIterations bounds each search so that unsatisfiable constraint
	// sets terminate.
	maxIterations = 10000

	minYear = 1970
	maxYear = 2450
)

// Schedule evaluates a compiled recurrence. It holds no mutable state and is
// safe for concurrent use.
type Schedule struct {
	rec *recur.Recurrence
}

// New returns a schedule for r. A nil recurrence, or one whose Err is set,
// never occurs.
func New(r *recur.Recurrence) *Schedule {
	if r == nil {
		r = &recur.Recurrence{}
	}
	return &Schedule{rec: r}
}

// IsValid reports whether t is an occurrence instant: some schedule matches it
// and no exception does.
func (s *Schedule) IsValid(t time.Time) bool {
	if s.rec.Err != nil {
		return false
	}
	t = t.Truncate(time.Second)
	for _, set := range s.rec.Schedules {
		if matches(set, t) {
			return !s.excluded(t)
		}
	}
	return false
}

// Next returns up to n occurrences at or after from, in ascending order. When
// n is not positive the recurrence's count is used, falling back to one. The
// recurrence's count is never exceeded.
func (s *Schedule) Next(n int, from time.Time) []time.Time {
	return s.walk(forward, s.limit(n), ceilSecond(from))
}

// Prev returns up to n occurrences at or before from, latest first.
func (s *Schedule) Prev(n int, from time.Time) []time.Time {
	return s.walk(backward, s.limit(n), from.Truncate(time.Second))
}

func (s *Schedule) limit(n int) int {
	count, hasCount := s.rec.Count.Get()
	switch {
	case n <= 0 && hasCount:
		return count
	case n <= 0:
		return 1
	case hasCount:
		return min(n, count)
	}
	return n
}

// cursor tracks the search position of one constraint set.
type cursor struct {
	set  recur.ConstraintSet
	at   time.Time
	next time.Time // pending candidate, zero when the set is exhausted
	done bool
}

func (s *Schedule) walk(d direction, limit int, from time.Time) []time.Time {
	if s.rec.Err != nil || limit <= 0 {
		return nil
	}
	if d == backward {
		// Nothing after a bare cutoff can occur, so start below it.
		for _, ex := range s.rec.Exceptions {
			if a, ok := ex.After.Get(); ok && len(ex.Constraints) == 0 && from.After(a) {
				from = a.Truncate(time.Second).In(from.Location())
			}
		}
	}

	cursors := make([]*cursor, 0, len(s.rec.Schedules))
	for _, set := range s.rec.Schedules {
		c := &cursor{set: set, at: from}
		c.advance(d)
		cursors = append(cursors, c)
	}

	var out []time.Time
	for steps := 0; len(out) < limit && steps < maxIterations; steps++ {
		best := pick(d, cursors)
		if best.IsZero() {
			break
		}
		excludedBy, isExcluded := s.exclusion(best)
		if !isExcluded && (len(out) == 0 || !out[len(out)-1].Equal(best)) {
			out = append(out, best)
		}
		for _, c := range cursors {
			if c.done || !c.next.Equal(best) {
				continue
			}
			resume := d.tick(c.set, best)
			if isExcluded {
				escape, ok := d.escape(excludedBy, best)
				if !ok {
					c.done = true
					continue
				}
				resume = d.further(resume, escape)
			}
			c.at = resume
			c.advance(d)
		}
	}
	return out
}

func (c *cursor) advance(d direction) {
	if c.done {
		return
	}
	c.next = d.find(c.set, c.at)
	if c.next.IsZero() {
		c.done = true
	}
}

// pick returns the nearest pending candidate in direction d.
func pick(d direction, cursors []*cursor) time.Time {
	var best time.Time
	for _, c := range cursors {
		if c.done {
			continue
		}
		if best.IsZero() || d.before(c.next, best) {
			best = c.next
		}
	}
	return best
}

func (s *Schedule) excluded(t time.Time) bool {
	_, ok := s.exclusion(t)
	return ok
}

// exclusion returns the first exception matching t.
func (s *Schedule) exclusion(t time.Time) (recur.ConstraintSet, bool) {
	for _, ex := range s.rec.Exceptions {
		if matches(ex, t) {
			return ex, true
		}
	}
	return recur.ConstraintSet{}, false
}

// matches reports whether every constraint of set holds at t and t is past
// its cutoff.
func matches(set recur.ConstraintSet, t time.Time) bool {
	if set.IsZero() {
		return false
	}
	if a, ok := set.After.Get(); ok && !t.After(a) {
		return false
	}
	for _, c := range set.Constraints {
		if !satisfied(c, t) {
			return false
		}
	}
	return true
}

func satisfied(c recur.Constraint, t time.Time) bool {
	for _, v := range c.Values {
		if c.Period.IsValid(t, v) {
			return true
		}
	}
	return false
}

func ceilSecond(t time.Time) time.Time {
	s := t.Truncate(time.Second)
	if s.Before(t) {
		s = s.Add(time.Second)
	}
	return s
}

func inRange(t time.Time) bool {
	return t.Year() >= minYear && t.Year() <= maxYear
}
