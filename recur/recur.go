// Package recur accumulates "every N unit" and "on these values" constraints
// into constraint sets that a schedule evaluator can walk.
package recur

import (
	"slices"
	"time"

	"github.com/samber/mo"

	"github.com/mattdeluco/later/period"
)

// Constraint restricts one period to a set of values.
type Constraint struct {
	Period period.Period
	Values []int
}

// ConstraintSet matches an instant when every constraint holds and, if After
// is set, the instant is strictly later than it.
type ConstraintSet struct {
	Constraints []Constraint
	After       mo.Option[time.Time]
}

// Values returns the values registered for the period named like p, or nil.
func (c ConstraintSet) Values(p period.Period) []int {
	for _, con := range c.Constraints {
		if con.Period.Name() == p.Name() {
			return con.Values
		}
	}
	return nil
}

// IsZero reports whether the set has neither constraints nor a cutoff.
func (c ConstraintSet) IsZero() bool {
	return len(c.Constraints) == 0 && c.After.IsAbsent()
}

// Map returns the constraints keyed by period name.
func (c ConstraintSet) Map() map[string][]int {
	m := make(map[string][]int, len(c.Constraints))
	for _, con := range c.Constraints {
		m[con.Period.Name()] = slices.Clone(con.Values)
	}
	return m
}

// Recurrence is a compiled schedule: an instant occurs when it matches any of
// Schedules and none of Exceptions.
type Recurrence struct {
	Schedules  []ConstraintSet
	Exceptions []ConstraintSet
	// Count caps the number of occurrences an evaluator produces.
	Count mo.Option[int]
	// Err is set when the source rule was rejected; the sets are then empty.
	Err error
}

// Invalid returns the canonical failed recurrence for err.
func Invalid(err error) *Recurrence {
	return &Recurrence{
		Schedules:  []ConstraintSet{},
		Exceptions: []ConstraintSet{},
		Err:        err,
	}
}
