package period

import "time"

// midnight returns 00:00:00 of the given calendar day in loc. Day and month
// overflow is normalised by time.Date.
func midnight(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return midnight(y, m, d, t.Location())
}

// endOfDay returns the last second of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return midnight(y, m, d+1, t.Location()).Add(-time.Second)
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(y int) int {
	return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// truncate drops everything below the given unit without going through
// time.Date, so it stays correct across DST transitions.
func truncate(t time.Time, d time.Duration) time.Time {
	var off time.Duration
	if d >= time.Hour {
		off += time.Duration(t.Minute()) * time.Minute
	}
	if d >= time.Minute {
		off += time.Duration(t.Second()) * time.Second
	}
	off += time.Duration(t.Nanosecond())
	return t.Add(-off)
}

// isoWeekStart returns the Monday that starts ISO week w of isoYear.
func isoWeekStart(isoYear, w int, loc *time.Location) time.Time {
	jan4 := midnight(isoYear, time.January, 4, loc)
	back := (int(jan4.Weekday()) + 6) % 7
	return midnight(isoYear, time.January, 4-back+(w-1)*7, loc)
}

// isoWeeksIn returns 52 or 53.
func isoWeeksIn(isoYear int) int {
	_, w := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
