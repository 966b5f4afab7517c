package rrule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// setter converts the raw value of part key and stores it on the rule.
type setter func(r *Rule, key, value string, o options) error

var setters = map[string]setter{
	"FREQ": func(r *Rule, _, value string, _ options) error {
		r.Freq = Frequency(value)
		return nil
	},
	"UNTIL":      setUntil,
	"COUNT":      intPart(func(r *Rule) *mo.Option[int] { return &r.Count }),
	"INTERVAL":   intPart(func(r *Rule) *mo.Option[int] { return &r.Interval }),
	"WKST":       setWkst,
	"BYDAY":      setByDay,
	"BYSECOND":   listPart(func(r *Rule) *[]int { return &r.BySecond }),
	"BYMINUTE":   listPart(func(r *Rule) *[]int { return &r.ByMinute }),
	"BYHOUR":     listPart(func(r *Rule) *[]int { return &r.ByHour }),
	"BYMONTHDAY": listPart(func(r *Rule) *[]int { return &r.ByMonthDay }),
	"BYYEARDAY":  listPart(func(r *Rule) *[]int { return &r.ByYearDay }),
	"BYWEEKNO":   listPart(func(r *Rule) *[]int { return &r.ByWeekNo }),
	"BYMONTH":    listPart(func(r *Rule) *[]int { return &r.ByMonth }),
	"BYSETPOS":   listPart(func(r *Rule) *[]int { return &r.BySetPos }),
}

// Parse splits an RRULE content line into typed rule parts. Anything before
// the first ':' is ignored, so both "RRULE:FREQ=DAILY" and "FREQ=DAILY" are
// accepted. Parts the parser does not know are kept in Rule.Extra.
//
// Parse does not check RFC 5545 legality; see Validate.
func Parse(text string, opts ...Option) (*Rule, error) {
	o := newOptions(opts)

	body := text
	if _, after, found := strings.Cut(text, ":"); found {
		body = after
	}

	rule := &Rule{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, &MalformedValueError{Key: part, Err: errMissingValue}
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if seen[key] {
			return nil, &MalformedValueError{Key: key, Value: value, Err: errDuplicatePart}
		}
		seen[key] = true

		set, known := setters[key]
		if !known {
			rule.Extra = append(rule.Extra, Part{Key: key, Value: value})
			continue
		}
		if err := set(rule, key, value, o); err != nil {
			return nil, err
		}
	}
	return rule, nil
}

func intPart(field func(*Rule) *mo.Option[int]) setter {
	return func(r *Rule, key, value string, _ options) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return &MalformedValueError{Key: key, Value: value, Err: err}
		}
		*field(r) = mo.Some(n)
		return nil
	}
}

func listPart(field func(*Rule) *[]int) setter {
	return func(r *Rule, key, value string, _ options) error {
		values, err := parseIntList(value)
		if err != nil {
			return &MalformedValueError{Key: key, Value: value, Err: err}
		}
		*field(r) = values
		return nil
	}
}

func parseIntList(value string) ([]int, error) {
	fields := strings.Split(value, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, nil
}

func setUntil(r *Rule, key, value string, o options) error {
	var (
		t   time.Time
		err error
	)
	switch {
	case len(value) == len(untilDateLayout):
		t, err = time.ParseInLocation(untilDateLayout, value, o.location)
		r.untilDate = true
	case strings.HasSuffix(value, "Z"):
		t, err = time.Parse(untilUTCLayout, value)
	default:
		t, err = time.ParseInLocation(untilLocalLayout, value, o.location)
	}
	if err != nil {
		return &MalformedValueError{Key: key, Value: value, Err: fmt.Errorf("%w: %w", errBadUntil, err)}
	}
	r.Until = mo.Some(t)
	return nil
}

// setWkst accepts a weekday code, or its number for compatibility with
// rules that spell WKST as an integer.
func setWkst(r *Rule, key, value string, _ options) error {
	if wd, ok := parseWeekday(strings.ToUpper(value)); ok {
		r.Wkst = mo.Some(wd)
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < int(Sunday) || n > int(Saturday) {
		return &MalformedValueError{Key: key, Value: value, Err: errBadWeekday}
	}
	r.Wkst = mo.Some(Weekday(n))
	return nil
}

var byDayPattern = regexp.MustCompile(`^([+-]?\d+)?([A-Za-z]{2})$`)

func setByDay(r *Rule, key, value string, _ options) error {
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		m := byDayPattern.FindStringSubmatch(token)
		if m == nil {
			return &MalformedValueError{Key: key, Value: token, Err: errBadWeekday}
		}
		wd, ok := parseWeekday(strings.ToUpper(m[2]))
		if !ok {
			return &MalformedValueError{Key: key, Value: token, Err: errBadWeekday}
		}
		var ordinal int
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return &MalformedValueError{Key: key, Value: token, Err: err}
			}
			ordinal = n
		}
		r.ByDay = append(r.ByDay, WeekdayNum{Ordinal: ordinal, Weekday: wd})
	}
	return nil
}
