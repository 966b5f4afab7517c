package period

import "time"

type second struct{}

func (second) Name() string  { return "second" }
func (second) Range() string { return "minute" }

func (second) Val(t time.Time) int { return t.Second() }

func (p second) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (second) Extent(time.Time) [2]int { return [2]int{0, 59} }

func (second) Start(t time.Time) time.Time { return truncate(t, time.Second) }

func (second) End(t time.Time) time.Time { return truncate(t, time.Second) }

func (second) Next(t time.Time, v int) time.Time {
	if v < 0 || v > 59 {
		return time.Time{}
	}
	m := truncate(t, time.Minute)
	if v <= t.Second() {
		m = m.Add(time.Minute)
	}
	return m.Add(time.Duration(v) * time.Second)
}

func (second) Prev(t time.Time, v int) time.Time {
	if v < 0 || v > 59 {
		return time.Time{}
	}
	m := truncate(t, time.Minute)
	if v >= t.Second() {
		m = m.Add(-time.Minute)
	}
	return m.Add(time.Duration(v) * time.Second)
}

type minute struct{}

func (minute) Name() string  { return "minute" }
func (minute) Range() string { return "hour" }

func (minute) Val(t time.Time) int { return t.Minute() }

func (p minute) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (minute) Extent(time.Time) [2]int { return [2]int{0, 59} }

func (minute) Start(t time.Time) time.Time { return truncate(t, time.Minute) }

func (minute) End(t time.Time) time.Time {
	return truncate(t, time.Minute).Add(time.Minute - time.Second)
}

func (minute) Next(t time.Time, v int) time.Time {
	if v < 0 || v > 59 {
		return time.Time{}
	}
	h := truncate(t, time.Hour)
	if v <= t.Minute() {
		h = h.Add(time.Hour)
	}
	return h.Add(time.Duration(v) * time.Minute)
}

func (p minute) Prev(t time.Time, v int) time.Time {
	if v < 0 || v > 59 {
		return time.Time{}
	}
	h := truncate(t, time.Hour)
	if v >= t.Minute() {
		h = h.Add(-time.Hour)
	}
	return p.End(h.Add(time.Duration(v) * time.Minute))
}

type hour struct{}

func (hour) Name() string  { return "hour" }
func (hour) Range() string { return "day" }

func (hour) Val(t time.Time) int { return t.Hour() }

func (p hour) IsValid(t time.Time, v int) bool { return p.Val(t) == v }

func (hour) Extent(time.Time) [2]int { return [2]int{0, 23} }

func (hour) Start(t time.Time) time.Time { return truncate(t, time.Hour) }

func (hour) End(t time.Time) time.Time {
	return truncate(t, time.Hour).Add(time.Hour - time.Second)
}

func (hour) Next(t time.Time, v int) time.Time {
	if v < 0 || v > 23 {
		return time.Time{}
	}
	y, m, d := t.Date()
	if v <= t.Hour() {
		d++
	}
	return time.Date(y, m, d, v, 0, 0, 0, t.Location())
}

func (p hour) Prev(t time.Time, v int) time.Time {
	if v < 0 || v > 23 {
		return time.Time{}
	}
	y, m, d := t.Date()
	if v >= t.Hour() {
		d--
	}
	return p.End(time.Date(y, m, d, v, 0, 0, 0, t.Location()))
}
