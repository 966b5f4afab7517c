package period

import "time"

type month struct{}

func (month) Name() string  { return "month" }
func (month) Range() string { return "year" }

func (month) Val(t time.Time) int { return int(t.Month()) }

func (p month) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (month) Extent(time.Time) [2]int { return [2]int{1, 12} }

func (month) Start(t time.Time) time.Time {
	return midnight(t.Year(), t.Month(), 1, t.Location())
}

func (month) End(t time.Time) time.Time {
	return midnight(t.Year(), t.Month()+1, 1, t.Location()).Add(-time.Second)
}

func (month) Next(t time.Time, v int) time.Time {
	if v < 1 || v > 12 {
		return time.Time{}
	}
	y := t.Year()
	if v <= int(t.Month()) {
		y++
	}
	return midnight(y, time.Month(v), 1, t.Location())
}

func (p month) Prev(t time.Time, v int) time.Time {
	if v < 1 || v > 12 {
		return time.Time{}
	}
	y := t.Year()
	if v >= int(t.Month()) {
		y--
	}
	return p.End(midnight(y, time.Month(v), 1, t.Location()))
}

type year struct{}

func (year) Name() string { return "year" }

// Range is empty: years have no enclosing cycle.
func (year) Range() string { return "" }

func (year) Val(t time.Time) int { return t.Year() }

func (p year) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (year) Extent(time.Time) [2]int { return [2]int{1970, 2099} }

func (year) Start(t time.Time) time.Time {
	return midnight(t.Year(), time.January, 1, t.Location())
}

func (year) End(t time.Time) time.Time {
	return midnight(t.Year()+1, time.January, 1, t.Location()).Add(-time.Second)
}

func (year) Next(t time.Time, v int) time.Time {
	if v <= t.Year() {
		return time.Time{}
	}
	return midnight(v, time.January, 1, t.Location())
}

func (p year) Prev(t time.Time, v int) time.Time {
	if v >= t.Year() {
		return time.Time{}
	}
	return p.End(midnight(v, time.January, 1, t.Location()))
}
