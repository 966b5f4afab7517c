// Package modifier wraps periods to change how their values are interpreted.
package modifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattdeluco/later/period"
)

// ErrUnsupportedPeriod is returned when a period cannot be addressed from
// the end of its cycle.
var ErrUnsupportedPeriod = errors.New("negative modifier supports day, day of year and week of year (ISO) only")

// negative counts positions back from the end of the wrapped period's cycle:
// the last instance is -1, the one before it -2 and so on. This is how RFC 5545
// reads negative BYMONTHDAY, BYYEARDAY and BYWEEKNO values.
type negative struct {
	p period.Cyclic
}

// Negative wraps p so that its values are negative offsets from the end of
// the enclosing cycle. Only cyclic periods can be wrapped.
func Negative(p period.Period) (period.Period, error) {
	c, ok := p.(period.Cyclic)
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedPeriod, p.Name())
	}
	return negative{p: c}, nil
}

// MustNegative is like Negative but panics if p cannot be wrapped.
func MustNegative(p period.Period) period.Period {
	n, err := Negative(p)
	if err != nil {
		panic(err)
	}
	return n
}

func (n negative) Name() string  { return "negative " + n.p.Name() }
func (n negative) Range() string { return n.p.Range() }

func (n negative) Val(t time.Time) int {
	return -1 * (n.p.Extent(t)[1] - n.p.Val(t) + 1)
}

func (n negative) IsValid(t time.Time, v int) bool { return n.Val(t) == v }

func (n negative) Extent(t time.Time) [2]int {
	ext := n.p.Extent(t)
	return [2]int{-ext[1], -ext[0]}
}

func (n negative) Start(t time.Time) time.Time { return n.p.Start(t) }
func (n negative) End(t time.Time) time.Time   { return n.p.End(t) }

// position converts negative value v into a positive position within the
// cycle containing t, clamped to the cycle's extent.
func (n negative) position(t time.Time, v int) int {
	ext := n.p.Extent(t)
	return min(max(ext[1]+v+1, ext[0]), ext[1])
}

// Next returns the start of the next instance at offset v. When the cycle
// containing t is shorter than -v the cycle's first instance stands in for it.
func (n negative) Next(t time.Time, v int) time.Time {
	if pos := n.position(t, v); pos > n.p.Val(t) {
		return n.p.Nth(t, pos)
	}
	next := n.p.CycleEnd(t).Add(time.Second)
	return n.p.Nth(next, n.position(next, v))
}

// Prev returns the end of the previous instance at offset v, clamping
// against the previous cycle's extent the same way Next does.
func (n negative) Prev(t time.Time, v int) time.Time {
	if pos := n.position(t, v); pos < n.p.Val(t) {
		return n.p.End(n.p.Nth(t, pos))
	}
	prev := n.p.CycleStart(t).Add(-time.Second)
	return n.p.End(n.p.Nth(prev, n.position(prev, v)))
}
