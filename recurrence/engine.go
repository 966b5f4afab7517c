package recurrence

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	rrulego "github.com/teambition/rrule-go"

	"github.com/mattdeluco/later/recur"
	"github.com/mattdeluco/later/rrule"
	"github.com/mattdeluco/later/schedule"
)

// Engine compiles and expands component recurrences.
type Engine struct {
	cache  *Cache
	config EngineConfig
	logger *slog.Logger
}

// NewEngine creates an engine with DefaultEngineConfig.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithConfig creates a new recurrence engine with custom configuration
func NewEngineWithConfig(config EngineConfig) *Engine {
	config = config.withDefaults()
	e := &Engine{
		config: config,
		logger: config.Logger,
	}
	if config.CacheEnabled {
		e.cache = NewCache(config.Cache)
	}
	return e
}

// Close releases the engine's cache.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// CacheStats reports cache statistics; ok is false when caching is disabled.
func (e *Engine) CacheStats() (stats CacheStats, ok bool) {
	if e.cache == nil {
		return CacheStats{}, false
	}
	return e.cache.Stats(), true
}

// Compile compiles an RRULE value, with or without its "RRULE:" name. The
// result may be shared between callers and must not be modified.
func (e *Engine) Compile(rule string) *recur.Recurrence {
	line := ruleLine(rule)
	key := Key("compile", line, e.config.Location.String())
	if v, ok := e.cacheGet(key); ok {
		return v.(*recur.Recurrence)
	}

	rec := rrule.ParseICalRule(line,
		rrule.WithLocation(e.config.Location),
		rrule.WithLogger(e.logger))
	if rec.Err != nil {
		e.logger.Debug("rule rejected", "rule", line, "error", rec.Err)
	}
	e.cacheSet(key, rec)
	return rec
}

// Occurrences returns up to n instants at or after from at which the
// component occurs: matches of its RRULE plus its RDATEs, minus its EXDATEs.
// When n is not positive the configured MaxOccurrences is used.
func (e *Engine) Occurrences(info Info, from time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		n = e.config.MaxOccurrences
	}

	var out []time.Time
	if info.Rule != "" {
		rec := e.Compile(info.Rule)
		if rec.Err != nil {
			return nil, fmt.Errorf("failed to compile RRULE %q: %w", info.Rule, rec.Err)
		}
		out = e.nextIncluded(schedule.New(rec), info.ExDates, from, n)
	}
	for _, rdate := range info.RDates {
		if !rdate.Before(from) && !isExcluded(rdate, info.ExDates) {
			out = append(out, rdate)
		}
	}

	slices.SortFunc(out, time.Time.Compare)
	out = slices.CompactFunc(out, time.Time.Equal)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// maxScanned bounds how many schedule matches Occurrences examines while
// looking past excluded ones.
const maxScanned = 10000

// nextIncluded returns up to n matches of s at or after from that no EXDATE
// removes. A date-only EXDATE can drop any number of sub-daily matches, so
// the window doubles until enough survive or the schedule runs out.
func (e *Engine) nextIncluded(s *schedule.Schedule, exdates []time.Time, from time.Time, n int) []time.Time {
	var out []time.Time
	for want := n + len(exdates); ; want *= 2 {
		matches := s.Next(want, from)
		out = out[:0]
		for _, t := range matches {
			if !isExcluded(t, exdates) {
				out = append(out, t)
			}
		}
		if len(out) >= n || len(matches) < want || want >= maxScanned {
			if want >= maxScanned && len(out) < n {
				e.logger.Debug("occurrence scan limit reached", "scanned", len(matches), "kept", len(out))
			}
			return out
		}
	}
}

// ExpandAnchored expands the component the RFC 5545 way, counting the rule
// from masterStart, and returns the instances overlapping the range. The rule
// must pass Validate before it is handed to rrule-go.
func (e *Engine) ExpandAnchored(
	masterStart, masterEnd time.Time,
	info Info,
	rangeStart, rangeEnd time.Time,
) ([]Occurrence, error) {
	key := Key("expand", masterStart, masterEnd, info.Rule, info.RDates, info.ExDates, rangeStart, rangeEnd)
	if v, ok := e.cacheGet(key); ok {
		e.logger.Debug("expansion cache hit", "rule", info.Rule)
		return slices.Clone(v.([]Occurrence)), nil
	}

	duration := masterEnd.Sub(masterStart)
	overlaps := func(start time.Time) bool {
		return !start.After(rangeEnd) && !start.Add(duration).Before(rangeStart)
	}

	var out []Occurrence
	if info.Rule != "" {
		if err := e.validate(info.Rule); err != nil {
			return nil, err
		}
		starts, err := e.expandRule(masterStart, info.Rule, rangeStart.Add(-duration), rangeEnd)
		if err != nil {
			return nil, err
		}
		for _, start := range starts {
			if overlaps(start) && !isExcluded(start, info.ExDates) {
				out = append(out, Occurrence{Start: start, End: start.Add(duration)})
			}
		}
	} else if overlaps(masterStart) && !isExcluded(masterStart, info.ExDates) {
		out = append(out, Occurrence{Start: masterStart, End: masterEnd})
	}

	for _, rdate := range info.RDates {
		if overlaps(rdate) && !isExcluded(rdate, info.ExDates) {
			out = append(out, Occurrence{Start: rdate, End: rdate.Add(duration), FromRDate: true})
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int { return a.Start.Compare(b.Start) })
	if len(out) > e.config.MaxOccurrences {
		out = out[:e.config.MaxOccurrences]
	}
	e.cacheSet(key, slices.Clone(out))
	return out, nil
}

// HasOccurrenceInRange checks if a recurring component has any occurrence in
// the time range without expanding all of it.
func (e *Engine) HasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	info Info,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	key := Key("has", masterStart, masterEnd, info.Rule, info.RDates, info.ExDates, rangeStart, rangeEnd)
	if v, ok := e.cacheGet(key); ok {
		return v.(bool), nil
	}

	found, err := e.hasOccurrenceInRange(masterStart, masterEnd, info, rangeStart, rangeEnd)
	if err != nil {
		return false, err
	}
	e.cacheSet(key, found)
	return found, nil
}

func (e *Engine) hasOccurrenceInRange(
	masterStart, masterEnd time.Time,
	info Info,
	rangeStart, rangeEnd time.Time,
) (bool, error) {
	// The master instance counts whether or not there is a rule.
	if !masterStart.After(rangeEnd) && !masterEnd.Before(rangeStart) &&
		!isExcluded(masterStart, info.ExDates) {
		return true, nil
	}

	if info.Rule != "" {
		if err := e.validate(info.Rule); err != nil {
			return false, err
		}
		limitedEnd := rangeEnd
		if rangeEnd.Sub(rangeStart) > e.config.LargeRangeThreshold {
			limitedEnd = rangeStart.Add(e.config.LargeRangeLimit)
		}

		starts, err := e.expandRule(masterStart, info.Rule, rangeStart, limitedEnd)
		if err != nil {
			return false, fmt.Errorf("failed to check RRULE occurrences: %w", err)
		}
		if slices.ContainsFunc(starts, func(t time.Time) bool { return !isExcluded(t, info.ExDates) }) {
			return true, nil
		}

		// Nothing in the probe window; look at the whole range, boundedly.
		if limitedEnd.Before(rangeEnd) {
			starts, err = e.expandRule(masterStart, info.Rule, rangeStart, rangeEnd)
			if err != nil {
				return false, fmt.Errorf("failed to check RRULE occurrences: %w", err)
			}
			if len(starts) > e.config.MaxOccurrences {
				starts = starts[:e.config.MaxOccurrences]
			}
			if slices.ContainsFunc(starts, func(t time.Time) bool { return !isExcluded(t, info.ExDates) }) {
				return true, nil
			}
		}
	}

	duration := masterEnd.Sub(masterStart)
	for _, rdate := range info.RDates {
		if !rdate.After(rangeEnd) && !rdate.Add(duration).Before(rangeStart) &&
			!isExcluded(rdate, info.ExDates) {
			return true, nil
		}
	}
	return false, nil
}

// validate rejects rules that break RFC 5545. Rules the schedule evaluator
// cannot represent are still fine for rrule-go.
func (e *Engine) validate(rule string) error {
	rec := e.Compile(rule)
	if rec.Err != nil && !errors.Is(rec.Err, rrule.ErrUnsupported) {
		return fmt.Errorf("failed to compile RRULE %q: %w", rule, rec.Err)
	}
	return nil
}

// expandRule runs rrule-go over the rule anchored at masterStart and returns
// the starts within [rangeStart, rangeEnd].
func (e *Engine) expandRule(masterStart time.Time, rule string, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	dtstart := masterStart.UTC().Format("20060102T150405Z")
	body := strings.TrimPrefix(ruleLine(rule), "RRULE:")

	set, err := rrulego.StrToRRuleSet(fmt.Sprintf("DTSTART:%s\nRRULE:%s", dtstart, body))
	if err != nil {
		e.logger.Warn("anchored expansion failed", "rule", rule, "error", err)
		return nil, fmt.Errorf("failed to parse RRULE '%s': %w", rule, err)
	}
	return set.Between(rangeStart, rangeEnd, true), nil
}

func (e *Engine) cacheGet(key string) (any, bool) {
	if e.cache == nil {
		return nil, false
	}
	return e.cache.Get(key)
}

func (e *Engine) cacheSet(key string, value any) {
	if e.cache != nil {
		e.cache.Set(key, value)
	}
}

// ruleLine normalises an RRULE value to a full "RRULE:..." content line.
func ruleLine(rule string) string {
	rule = strings.TrimSpace(rule)
	if name, body, ok := strings.Cut(rule, ":"); ok && strings.EqualFold(name, "RRULE") {
		return "RRULE:" + body
	}
	return "RRULE:" + rule
}

// isExcluded checks if t is in the EXDATE list. A date-only EXDATE, stored
// as midnight UTC, excludes every instance on that date.
func isExcluded(t time.Time, exdates []time.Time) bool {
	for _, exdate := range exdates {
		if t.Equal(exdate) {
			return true
		}
		if exdate.Location() == time.UTC && isMidnight(exdate) {
			y, m, d := t.Date()
			if time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Equal(exdate) {
				return true
			}
		}
	}
	return false
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}
