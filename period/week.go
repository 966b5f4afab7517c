package period

import "time"

// weekOfMonth numbers Sunday-started weeks within a month. The first week is
// the one containing the 1st, so a month spans four to six weeks.
type weekOfMonth struct{}

func (weekOfMonth) Name() string  { return "week of month" }
func (weekOfMonth) Range() string { return "month" }

// weekOffset is the weekday of the 1st, Sunday=0.
func weekOffset(y int, m time.Month) int {
	return int(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

func (weekOfMonth) Val(t time.Time) int {
	return (t.Day()-1+weekOffset(t.Year(), t.Month()))/7 + 1
}

func (p weekOfMonth) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func weeksInMonth(y int, m time.Month) int {
	return (daysInMonth(y, m)-1+weekOffset(y, m))/7 + 1
}

func (weekOfMonth) Extent(t time.Time) [2]int {
	return [2]int{1, weeksInMonth(t.Year(), t.Month())}
}

// weekBounds returns the first and last day of week w, clipped to the month.
func weekBounds(y int, m time.Month, w int) (first, last int) {
	off := weekOffset(y, m)
	first = max((w-1)*7-off+1, 1)
	last = min(w*7-off, daysInMonth(y, m))
	return first, last
}

func (p weekOfMonth) Start(t time.Time) time.Time {
	y, m, _ := t.Date()
	first, _ := weekBounds(y, m, p.Val(t))
	return midnight(y, m, first, t.Location())
}

func (p weekOfMonth) End(t time.Time) time.Time {
	y, m, _ := t.Date()
	_, last := weekBounds(y, m, p.Val(t))
	return endOfDay(midnight(y, m, last, t.Location()))
}

func (p weekOfMonth) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 6 {
		return time.Time{}
	}
	y, m, _ := t.Date()
	loc := t.Location()
	if v > p.Val(t) && v <= weeksInMonth(y, m) {
		first, _ := weekBounds(y, m, v)
		return midnight(y, m, first, loc)
	}
	next := midnight(y, m+1, 1, loc)
	ny, nm := next.Year(), next.Month()
	if v > weeksInMonth(ny, nm) {
		return next
	}
	first, _ := weekBounds(ny, nm, v)
	return midnight(ny, nm, first, loc)
}

func (p weekOfMonth) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 6 {
		return time.Time{}
	}
	y, m, _ := t.Date()
	loc := t.Location()
	if v < p.Val(t) {
		_, last := weekBounds(y, m, v)
		return endOfDay(midnight(y, m, last, loc))
	}
	prev := midnight(y, m, 0, loc)
	py, pm := prev.Year(), prev.Month()
	if v > weeksInMonth(py, pm) {
		return endOfDay(prev)
	}
	_, last := weekBounds(py, pm, v)
	return endOfDay(midnight(py, pm, last, loc))
}

// weekOfYear is the ISO 8601 week number; its cycle is the ISO year.
type weekOfYear struct{}

func (weekOfYear) Name() string  { return "week of year (ISO)" }
func (weekOfYear) Range() string { return "year" }

func (weekOfYear) Val(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

func (p weekOfYear) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (weekOfYear) Extent(t time.Time) [2]int {
	y, _ := t.ISOWeek()
	return [2]int{1, isoWeeksIn(y)}
}

func (weekOfYear) Start(t time.Time) time.Time {
	y, w := t.ISOWeek()
	return isoWeekStart(y, w, t.Location())
}

func (p weekOfYear) End(t time.Time) time.Time {
	return p.Start(t).AddDate(0, 0, 7).Add(-time.Second)
}

func (weekOfYear) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 53 {
		return time.Time{}
	}
	y, w := t.ISOWeek()
	loc := t.Location()
	if v > w && v <= isoWeeksIn(y) {
		return isoWeekStart(y, v, loc)
	}
	if v > isoWeeksIn(y+1) {
		return isoWeekStart(y+1, 1, loc)
	}
	return isoWeekStart(y+1, v, loc)
}

func (weekOfYear) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 53 {
		return time.Time{}
	}
	y, w := t.ISOWeek()
	loc := t.Location()
	if v < w {
		return isoWeekStart(y, v+1, loc).Add(-time.Second)
	}
	v = min(v, isoWeeksIn(y-1))
	return isoWeekStart(y-1, v+1, loc).Add(-time.Second)
}

func (weekOfYear) CycleStart(t time.Time) time.Time {
	y, _ := t.ISOWeek()
	return isoWeekStart(y, 1, t.Location())
}

func (weekOfYear) CycleEnd(t time.Time) time.Time {
	y, _ := t.ISOWeek()
	return isoWeekStart(y+1, 1, t.Location()).Add(-time.Second)
}

func (weekOfYear) Nth(t time.Time, n int) time.Time {
	y, _ := t.ISOWeek()
	return isoWeekStart(y, n, t.Location())
}
