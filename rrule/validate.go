package rrule

import (
	"slices"
)

// check is one legality rule. It returns nil when r satisfies it.
type check func(r *Rule) error

// checks run in priority order; Validate reports the first failure.
var checks = []check{
	func(r *Rule) error {
		if r.Freq == "" {
			return invalid("FREQ is required")
		}
		if !slices.Contains(frequencies, r.Freq) {
			return invalid("unknown FREQ %q", r.Freq)
		}
		return nil
	},
	func(r *Rule) error {
		if r.Until.IsPresent() && r.Count.IsPresent() {
			return invalid("UNTIL and COUNT are mutually exclusive")
		}
		return nil
	},
	func(r *Rule) error {
		if !hasNumericByDay(r) {
			return nil
		}
		if r.Freq != Monthly && r.Freq != Yearly {
			return invalid("numeric BYDAY requires FREQ=MONTHLY or FREQ=YEARLY")
		}
		if r.Freq == Yearly && r.ByWeekNo != nil {
			return invalid("numeric BYDAY cannot be combined with BYWEEKNO")
		}
		return nil
	},
	func(r *Rule) error {
		if r.ByMonthDay != nil && r.Freq == Weekly {
			return invalid("BYMONTHDAY is not allowed with FREQ=WEEKLY")
		}
		return nil
	},
	func(r *Rule) error {
		if r.ByYearDay != nil && slices.Contains([]Frequency{Daily, Weekly, Monthly}, r.Freq) {
			return invalid("BYYEARDAY is not allowed with FREQ=%s", r.Freq)
		}
		return nil
	},
	func(r *Rule) error {
		if r.ByWeekNo != nil && r.Freq != Yearly {
			return invalid("BYWEEKNO requires FREQ=YEARLY")
		}
		return nil
	},
	func(r *Rule) error {
		if n, ok := r.Interval.Get(); ok && n < 1 {
			return invalid("INTERVAL must be positive, got %d", n)
		}
		if n, ok := r.Count.Get(); ok && n < 1 {
			return invalid("COUNT must be positive, got %d", n)
		}
		return nil
	},
	checkRanges,
}

// Validate checks r against the RFC 5545 cross-part restrictions. The
// returned error wraps ErrInvalidRule and names the first rule broken.
func Validate(r *Rule) error {
	if r == nil {
		return invalid("no rule")
	}
	for _, c := range checks {
		if err := c(r); err != nil {
			return err
		}
	}
	return nil
}

// Valid reports whether Validate accepts r.
func Valid(r *Rule) bool {
	return Validate(r) == nil
}

func hasNumericByDay(r *Rule) bool {
	return slices.ContainsFunc(r.ByDay, func(d WeekdayNum) bool { return d.Ordinal != 0 })
}

type bounds struct {
	key      string
	values   []int
	min, max int
	signed   bool
}

// checkRanges enforces the value ranges of RFC 5545 section 3.3.10. Signed
// parts accept -max..-min as well and never zero.
func checkRanges(r *Rule) error {
	for _, b := range []bounds{
		{"BYSECOND", r.BySecond, 0, 60, false},
		{"BYMINUTE", r.ByMinute, 0, 59, false},
		{"BYHOUR", r.ByHour, 0, 23, false},
		{"BYMONTHDAY", r.ByMonthDay, 1, 31, true},
		{"BYYEARDAY", r.ByYearDay, 1, 366, true},
		{"BYWEEKNO", r.ByWeekNo, 1, 53, true},
		{"BYMONTH", r.ByMonth, 1, 12, false},
		{"BYSETPOS", r.BySetPos, 1, 366, true},
	} {
		for _, v := range b.values {
			abs := v
			if b.signed && v < 0 {
				abs = -v
			}
			if abs < b.min || abs > b.max {
				return invalid("%s value %d out of range", b.key, v)
			}
		}
	}
	for _, d := range r.ByDay {
		if d.Ordinal < -53 || d.Ordinal > 53 {
			return invalid("BYDAY ordinal %d out of range", d.Ordinal)
		}
	}
	return nil
}
