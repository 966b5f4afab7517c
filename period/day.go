package period

import "time"

// day is the day of the month.
type day struct{}

func (day) Name() string  { return "day" }
func (day) Range() string { return "month" }

func (day) Val(t time.Time) int { return t.Day() }

func (p day) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (day) Extent(t time.Time) [2]int {
	y, m, _ := t.Date()
	return [2]int{1, daysInMonth(y, m)}
}

func (day) Start(t time.Time) time.Time { return startOfDay(t) }

func (day) End(t time.Time) time.Time { return endOfDay(t) }

func (day) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 31 {
		return time.Time{}
	}
	y, m, d := t.Date()
	loc := t.Location()
	if v > d && v <= daysInMonth(y, m) {
		return midnight(y, m, v, loc)
	}
	first := midnight(y, m+1, 1, loc)
	if v > daysInMonth(first.Year(), first.Month()) {
		return first
	}
	return midnight(first.Year(), first.Month(), v, loc)
}

func (day) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 31 {
		return time.Time{}
	}
	y, m, d := t.Date()
	loc := t.Location()
	if v < d {
		return endOfDay(midnight(y, m, v, loc))
	}
	last := midnight(y, m, 0, loc)
	if v > last.Day() {
		v = last.Day()
	}
	return endOfDay(midnight(last.Year(), last.Month(), v, loc))
}

func (day) CycleStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return midnight(y, m, 1, t.Location())
}

func (day) CycleEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	return midnight(y, m+1, 1, t.Location()).Add(-time.Second)
}

func (day) Nth(t time.Time, n int) time.Time {
	y, m, _ := t.Date()
	return midnight(y, m, n, t.Location())
}

// dayOfWeek numbers days Sunday=1 through Saturday=7.
type dayOfWeek struct{}

func (dayOfWeek) Name() string  { return "day of week" }
func (dayOfWeek) Range() string { return "week" }

func (dayOfWeek) Val(t time.Time) int { return int(t.Weekday()) + 1 }

func (p dayOfWeek) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (dayOfWeek) Extent(time.Time) [2]int { return [2]int{1, 7} }

func (dayOfWeek) Start(t time.Time) time.Time { return startOfDay(t) }

func (dayOfWeek) End(t time.Time) time.Time { return endOfDay(t) }

func (p dayOfWeek) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 7 {
		return time.Time{}
	}
	ahead := (v - p.Val(t) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	y, m, d := t.Date()
	return midnight(y, m, d+ahead, t.Location())
}

func (p dayOfWeek) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 7 {
		return time.Time{}
	}
	back := (p.Val(t) - v + 7) % 7
	if back == 0 {
		back = 7
	}
	y, m, d := t.Date()
	return endOfDay(midnight(y, m, d-back, t.Location()))
}

// dayOfWeekCount splits a month into seven day blocks: days 1-7 are block 1,
// days 8-14 block 2 and so on. Negative values count blocks back from the
// end of the month, so -1 is the last seven days.
type dayOfWeekCount struct{}

func (dayOfWeekCount) Name() string  { return "day of week count" }
func (dayOfWeekCount) Range() string { return "month" }

func (dayOfWeekCount) Val(t time.Time) int { return (t.Day()-1)/7 + 1 }

func (p dayOfWeekCount) IsValid(t time.Time, v int) bool {
	if v >= 0 {
		return p.Val(t) == v
	}
	from, to := blockFromEnd(t.Year(), t.Month(), v)
	return t.Day() >= from && t.Day() <= to
}

func (dayOfWeekCount) Extent(t time.Time) [2]int {
	return [2]int{1, (daysInMonth(t.Year(), t.Month())-1)/7 + 1}
}

func (p dayOfWeekCount) Start(t time.Time) time.Time {
	y, m, _ := t.Date()
	return midnight(y, m, (p.Val(t)-1)*7+1, t.Location())
}

func (p dayOfWeekCount) End(t time.Time) time.Time {
	y, m, _ := t.Date()
	last := min(p.Val(t)*7, daysInMonth(y, m))
	return endOfDay(midnight(y, m, last, t.Location()))
}

// blockFromEnd returns the day range covered by negative block v.
func blockFromEnd(y int, m time.Month, v int) (from, to int) {
	n := daysInMonth(y, m)
	return n + v*7 + 1, n + (v+1)*7
}

func (dayOfWeekCount) Next(t time.Time, v int) time.Time {
	if v == 0 || v < -5 || v > 5 {
		return time.Time{}
	}
	y, m, d := t.Date()
	loc := t.Location()
	first := midnight(y, m+1, 1, loc)
	if v > 0 {
		start := (v-1)*7 + 1
		if start > d && start <= daysInMonth(y, m) {
			return midnight(y, m, start, loc)
		}
		if start > daysInMonth(first.Year(), first.Month()) {
			return first
		}
		return midnight(first.Year(), first.Month(), start, loc)
	}
	if from, _ := blockFromEnd(y, m, v); from > d {
		return midnight(y, m, from, loc)
	}
	from, _ := blockFromEnd(first.Year(), first.Month(), v)
	return midnight(first.Year(), first.Month(), max(from, 1), loc)
}

func (dayOfWeekCount) Prev(t time.Time, v int) time.Time {
	if v == 0 || v < -5 || v > 5 {
		return time.Time{}
	}
	y, m, d := t.Date()
	loc := t.Location()
	last := midnight(y, m, 0, loc)
	py, pm, pn := last.Year(), last.Month(), last.Day()
	if v > 0 {
		start, end := (v-1)*7+1, min(v*7, daysInMonth(y, m))
		if start <= daysInMonth(y, m) && end < d {
			return endOfDay(midnight(y, m, end, loc))
		}
		if start > pn {
			return endOfDay(last)
		}
		return endOfDay(midnight(py, pm, min(v*7, pn), loc))
	}
	if _, to := blockFromEnd(y, m, v); to >= 1 && to < d {
		return endOfDay(midnight(y, m, to, loc))
	}
	_, to := blockFromEnd(py, pm, v)
	return endOfDay(midnight(py, pm, max(to, 1), loc))
}

type dayOfYear struct{}

func (dayOfYear) Name() string  { return "day of year" }
func (dayOfYear) Range() string { return "year" }

func (dayOfYear) Val(t time.Time) int { return t.YearDay() }

func (p dayOfYear) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (dayOfYear) Extent(t time.Time) [2]int { return [2]int{1, daysInYear(t.Year())} }

func (dayOfYear) Start(t time.Time) time.Time { return startOfDay(t) }

func (dayOfYear) End(t time.Time) time.Time { return endOfDay(t) }

func (dayOfYear) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 366 {
		return time.Time{}
	}
	y := t.Year()
	loc := t.Location()
	if v > t.YearDay() && v <= daysInYear(y) {
		return midnight(y, time.January, v, loc)
	}
	if v > daysInYear(y+1) {
		return midnight(y+1, time.January, 1, loc)
	}
	return midnight(y+1, time.January, v, loc)
}

func (dayOfYear) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 366 {
		return time.Time{}
	}
	y := t.Year()
	loc := t.Location()
	if v < t.YearDay() {
		return endOfDay(midnight(y, time.January, v, loc))
	}
	return endOfDay(midnight(y-1, time.January, min(v, daysInYear(y-1)), loc))
}

func (dayOfYear) CycleStart(t time.Time) time.Time {
	return midnight(t.Year(), time.January, 1, t.Location())
}

func (dayOfYear) CycleEnd(t time.Time) time.Time {
	return midnight(t.Year()+1, time.January, 1, t.Location()).Add(-time.Second)
}

func (dayOfYear) Nth(t time.Time, n int) time.Time {
	return midnight(t.Year(), time.January, n, t.Location())
}
