package rrule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattdeluco/later/modifier"
	"github.com/mattdeluco/later/period"
	"github.com/mattdeluco/later/recur"
)

// frequencyUnits maps FREQ to the unit its INTERVAL strides over. DAILY
// strides over the day of the month rather than a raw day counter.
var frequencyUnits = map[Frequency]period.Period{
	Secondly: period.Second,
	Minutely: period.Minute,
	Hourly:   period.Hour,
	Daily:    period.Day,
	Weekly:   period.WeekOfMonth,
	Monthly:  period.Month,
	Yearly:   period.Year,
}

type byPart struct {
	values func(*Rule) []int
	unit   period.Period
	// negative is the wrapped unit for values counted from the end of the
	// cycle, nil when the part only takes non-negative values.
	negative period.Period
}

var byParts = []byPart{
	{values: func(r *Rule) []int { return r.BySecond }, unit: period.Second},
	{values: func(r *Rule) []int { return r.ByMinute }, unit: period.Minute},
	{values: func(r *Rule) []int { return r.ByHour }, unit: period.Hour},
	{values: func(r *Rule) []int { return r.ByMonthDay }, unit: period.Day, negative: modifier.MustNegative(period.Day)},
	{values: func(r *Rule) []int { return r.ByYearDay }, unit: period.DayOfYear, negative: modifier.MustNegative(period.DayOfYear)},
	{values: func(r *Rule) []int { return r.ByWeekNo }, unit: period.WeekOfYear, negative: modifier.MustNegative(period.WeekOfYear)},
	{values: func(r *Rule) []int { return r.ByMonth }, unit: period.Month},
}

// side is the unit one sign of a BY part registers against, with its values.
type side struct {
	unit   period.Period
	values []int
}

// sides splits the part's values by sign. Non-negative values go to the plain
// unit, negative ones to the wrapped unit.
func (p byPart) sides(r *Rule) []side {
	var pos, neg []int
	for _, v := range p.values(r) {
		if v < 0 {
			neg = append(neg, v)
		} else {
			pos = append(pos, v)
		}
	}
	var out []side
	if len(pos) > 0 {
		out = append(out, side{unit: p.unit, values: pos})
	}
	if len(neg) > 0 && p.negative != nil {
		out = append(out, side{unit: p.negative, values: neg})
	}
	return out
}

// combinations returns one entry per schedule the rule compiles to. A part
// with values of both signs matches either side, so each side gets its own
// schedule, crossed with the sides of every other such part.
func combinations(r *Rule) [][]side {
	combos := [][]side{nil}
	for _, part := range byParts {
		sides := part.sides(r)
		if len(sides) == 0 {
			continue
		}
		next := make([][]side, 0, len(combos)*len(sides))
		for _, c := range combos {
			for _, s := range sides {
				next = append(next, append(slices.Clone(c), s))
			}
		}
		combos = next
	}
	return combos
}

// maxWeekdayOrdinal is the largest BYDAY ordinal the month-based day of week
// count can represent.
const maxWeekdayOrdinal = 5

// Compile turns a rule into a recurrence. A rule that fails Validate yields
// the canonical failed recurrence carrying the validation error; a legal rule
// whose BYDAY ordinals exceed a month's weeks yields one carrying
// ErrUnsupported.
func Compile(r *Rule, opts ...Option) *recur.Recurrence {
	o := newOptions(opts)
	if err := Validate(r); err != nil {
		o.logger.Debug("rejected rule", "error", err)
		return recur.Invalid(err)
	}

	for _, d := range r.ByDay {
		if d.Ordinal < -maxWeekdayOrdinal || d.Ordinal > maxWeekdayOrdinal {
			err := fmt.Errorf("%w: BYDAY ordinal %d is beyond the weeks of a month", ErrUnsupported, d.Ordinal)
			o.logger.Debug("rejected rule", "error", err)
			return recur.Invalid(err)
		}
	}

	b := recur.New()
	for i, combo := range combinations(r) {
		if i > 0 {
			b.And()
		}
		b.Every(r.Interval.OrElse(1)).Period(frequencyUnits[r.Freq])
		for _, s := range combo {
			b.On(s.values...).Period(s.unit)
		}
		for _, d := range r.ByDay {
			if d.Ordinal != 0 {
				b.On(d.Ordinal).DayOfWeekCount()
			}
			b.On(int(d.Weekday)).DayOfWeek()
		}
	}

	if r.BySetPos != nil {
		o.logger.Debug("ignoring BYSETPOS", "values", r.BySetPos)
	}
	if count, ok := r.Count.Get(); ok {
		b.Limit(count)
	}
	if until, ok := r.Until.Get(); ok {
		b.Except().After(until)
	}

	rec := b.Build()
	o.logger.Debug("compiled rule",
		"rule", r.String(),
		"schedules", len(rec.Schedules),
		"exceptions", len(rec.Exceptions))
	return rec
}

// ParseICalRule parses, validates and compiles one RRULE content line. The
// "RRULE:" prefix is required. Malformed input never panics: it yields the
// canonical failed recurrence whose Err wraps ErrInvalidRule.
func ParseICalRule(text string, opts ...Option) *recur.Recurrence {
	name, _, found := strings.Cut(text, ":")
	if !found || !strings.EqualFold(strings.TrimSpace(name), "RRULE") {
		return recur.Invalid(fmt.Errorf("%w: %w", ErrInvalidRule, ErrMissingPrefix))
	}
	r, err := Parse(text, opts...)
	if err != nil {
		return recur.Invalid(fmt.Errorf("%w: %w", ErrInvalidRule, err))
	}
	return Compile(r, opts...)
}
