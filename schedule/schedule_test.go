package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattdeluco/later/recur"
	"github.com/mattdeluco/later/rrule"
)

func utc(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func compile(t *testing.T, rule string) *Schedule {
	t.Helper()
	rec := rrule.ParseICalRule(rule, rrule.WithLocation(time.UTC))
	require.NoError(t, rec.Err)
	return New(rec)
}

func assertTimes(t *testing.T, want, got []time.Time) {
	t.Helper()
	require.Len(t, got, len(want), "got %v", got)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "occurrence %d: want %s, got %s", i, want[i], got[i])
	}
}

func TestNext_Count(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY;COUNT=3")
	from := utc(2014, 7, 31, 16, 0)
	want := []time.Time{
		utc(2014, 7, 31, 16, 0),
		utc(2014, 7, 31, 17, 0),
		utc(2014, 7, 31, 18, 0),
	}
	assertTimes(t, want, s.Next(0, from))
	assertTimes(t, want, s.Next(10, from))
	assertTimes(t, want[:2], s.Next(2, from))
}

func TestNext_Until(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY;UNTIL=20140731T180000Z")
	assertTimes(t, []time.Time{
		utc(2014, 7, 31, 16, 0),
		utc(2014, 7, 31, 17, 0),
		utc(2014, 7, 31, 18, 0),
	}, s.Next(10, utc(2014, 7, 31, 16, 0)))

	assert.Empty(t, s.Next(1, utc(2014, 7, 31, 18, 0).Add(time.Second)))
}

func TestNext_DailyCount(t *testing.T) {
	s := compile(t, "RRULE:FREQ=DAILY;COUNT=10")
	var want []time.Time
	for d := 2; d < 12; d++ {
		want = append(want, utc(1997, 9, d, 0, 0))
	}
	assertTimes(t, want, s.Next(0, utc(1997, 9, 2, 0, 0)))
}

func TestNext_StartsInsideInstance(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY")
	assertTimes(t, []time.Time{
		utc(2014, 7, 31, 16, 30),
		utc(2014, 7, 31, 17, 0),
	}, s.Next(2, utc(2014, 7, 31, 16, 30)))

	// Sub-second input rounds up to the next whole second.
	got := s.Next(1, utc(2014, 7, 31, 16, 30).Add(time.Millisecond))
	assertTimes(t, []time.Time{utc(2014, 7, 31, 16, 30).Add(time.Second)}, got)
}

func TestNext_LastDayOfMonth(t *testing.T) {
	s := compile(t, "RRULE:FREQ=MONTHLY;BYMONTHDAY=-1")
	assertTimes(t, []time.Time{
		utc(2014, 9, 30, 0, 0),
		utc(2014, 10, 31, 0, 0),
		utc(2014, 11, 30, 0, 0),
	}, s.Next(3, utc(2014, 9, 4, 0, 0)))

	assertTimes(t, []time.Time{utc(2015, 2, 28, 0, 0)}, s.Next(1, utc(2015, 2, 1, 0, 0)))
	assertTimes(t, []time.Time{utc(2016, 2, 29, 0, 0)}, s.Next(1, utc(2016, 2, 1, 0, 0)))
}

func TestNext_FirstAndLastDayOfMonth(t *testing.T) {
	s := compile(t, "RRULE:FREQ=MONTHLY;BYMONTHDAY=1,-1")
	assertTimes(t, []time.Time{
		utc(2015, 1, 1, 0, 0),
		utc(2015, 1, 31, 0, 0),
		utc(2015, 2, 1, 0, 0),
		utc(2015, 2, 28, 0, 0),
	}, s.Next(4, utc(2015, 1, 1, 0, 0)))

	assertTimes(t, []time.Time{
		utc(2015, 3, 1, 0, 0),
		utc(2015, 2, 28, 0, 0),
		utc(2015, 2, 1, 0, 0),
	}, s.Prev(3, utc(2015, 3, 15, 0, 0)))

	// Day 28 and the last day coincide in February and are reported once.
	s = compile(t, "RRULE:FREQ=MONTHLY;BYMONTHDAY=28,-1")
	assertTimes(t, []time.Time{
		utc(2015, 1, 31, 0, 0),
		utc(2015, 2, 28, 0, 0),
		utc(2015, 3, 28, 0, 0),
	}, s.Next(3, utc(2015, 1, 29, 0, 0)))
}

func TestNext_FirstAndLastDayOfYear(t *testing.T) {
	s := compile(t, "RRULE:FREQ=YEARLY;BYYEARDAY=1,-1")
	assertTimes(t, []time.Time{
		utc(2015, 1, 1, 0, 0),
		utc(2015, 12, 31, 0, 0),
		utc(2016, 1, 1, 0, 0),
		utc(2016, 12, 31, 0, 0),
	}, s.Next(4, utc(2015, 1, 1, 0, 0)))
}

func TestNext_Weekly(t *testing.T) {
	s := compile(t, "RRULE:FREQ=WEEKLY;BYDAY=WE")
	assertTimes(t, []time.Time{
		utc(2014, 9, 3, 0, 0),
		utc(2014, 9, 10, 0, 0),
		utc(2014, 9, 17, 0, 0),
	}, s.Next(3, utc(2014, 9, 1, 0, 0)))
}

func TestNext_NthWeekday(t *testing.T) {
	// Second Thursday of the month: days 8 to 14.
	s := compile(t, "RRULE:FREQ=MONTHLY;BYDAY=2TH")
	assertTimes(t, []time.Time{
		utc(2014, 9, 11, 0, 0),
		utc(2014, 10, 9, 0, 0),
	}, s.Next(2, utc(2014, 9, 1, 0, 0)))
}

func TestNext_Exceptions(t *testing.T) {
	rec := recur.New().
		Every(1).Month().
		On(1).DayOfMonth().
		Except().On(7).Month().
		Build()
	s := New(rec)
	assertTimes(t, []time.Time{
		utc(2014, 6, 1, 0, 0),
		utc(2014, 8, 1, 0, 0),
		utc(2014, 9, 1, 0, 0),
	}, s.Next(3, utc(2014, 6, 1, 0, 0)))
}

func TestNext_MergesSchedules(t *testing.T) {
	rec := recur.New().
		On(9).Hour().On(0).Minute().On(0).Second().
		And().
		On(17).Hour().On(30).Minute().On(0).Second().
		Build()
	s := New(rec)
	assertTimes(t, []time.Time{
		utc(2014, 1, 1, 9, 0),
		utc(2014, 1, 1, 17, 30),
		utc(2014, 1, 2, 9, 0),
		utc(2014, 1, 2, 17, 30),
	}, s.Next(4, utc(2014, 1, 1, 0, 0)))
}

func TestNext_OverlappingSchedulesDeduplicate(t *testing.T) {
	rec := recur.New().
		On(9).Hour().
		And().
		On(9).Hour().
		Build()
	got := New(rec).Next(2, utc(2014, 1, 1, 0, 0))
	assertTimes(t, []time.Time{
		utc(2014, 1, 1, 9, 0),
		utc(2014, 1, 2, 9, 0),
	}, got)
}

func TestNext_Unsatisfiable(t *testing.T) {
	rec := recur.New().On(30).DayOfMonth().On(2).Month().Build()
	assert.Empty(t, New(rec).Next(1, utc(2014, 1, 1, 0, 0)))
	assert.Empty(t, New(rec).Prev(1, utc(2014, 1, 1, 0, 0)))
}

func TestNext_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	s := compile(t, "RRULE:FREQ=DAILY;BYHOUR=9")
	got := s.Next(2, time.Date(2014, 3, 1, 12, 0, 0, 0, loc))
	require.Len(t, got, 2)
	for _, g := range got {
		assert.Equal(t, loc, g.Location())
		assert.Equal(t, 9, g.Hour())
	}
	assert.Equal(t, 2, got[0].Day())
}

func TestPrev(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY")
	assertTimes(t, []time.Time{
		utc(2014, 7, 31, 18, 0),
		utc(2014, 7, 31, 17, 0),
		utc(2014, 7, 31, 16, 0),
	}, s.Prev(3, utc(2014, 7, 31, 18, 30)))

	s = compile(t, "RRULE:FREQ=MONTHLY;BYMONTHDAY=-1")
	assertTimes(t, []time.Time{
		utc(2016, 2, 29, 0, 0),
		utc(2016, 1, 31, 0, 0),
		utc(2015, 12, 31, 0, 0),
	}, s.Prev(3, utc(2016, 3, 15, 0, 0)))
}

func TestPrev_Until(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY;UNTIL=20140731T180000Z")
	assertTimes(t, []time.Time{
		utc(2014, 7, 31, 18, 0),
		utc(2014, 7, 31, 17, 0),
	}, s.Prev(2, utc(2014, 8, 1, 0, 0)))
}

func TestIsValid(t *testing.T) {
	s := compile(t, "RRULE:FREQ=HOURLY;UNTIL=20140731T180000Z")
	assert.True(t, s.IsValid(utc(2014, 7, 31, 17, 0)))
	assert.True(t, s.IsValid(utc(2014, 7, 31, 18, 0)))
	assert.False(t, s.IsValid(utc(2014, 7, 31, 19, 0)))

	s = compile(t, "RRULE:FREQ=MONTHLY;BYMONTHDAY=-1")
	assert.True(t, s.IsValid(utc(2016, 2, 29, 10, 0)))
	assert.False(t, s.IsValid(utc(2016, 2, 28, 10, 0)))
}

func TestInvalidRecurrenceNeverOccurs(t *testing.T) {
	s := New(rrule.ParseICalRule("RRULE:FREQ=WEEKLY;BYMONTHDAY=1"))
	assert.Empty(t, s.Next(5, utc(2014, 1, 1, 0, 0)))
	assert.Empty(t, s.Prev(5, utc(2014, 1, 1, 0, 0)))
	assert.False(t, s.IsValid(utc(2014, 1, 1, 0, 0)))

	assert.Empty(t, New(nil).Next(1, utc(2014, 1, 1, 0, 0)))
}

func TestNext_DefaultsToOne(t *testing.T) {
	s := compile(t, "RRULE:FREQ=DAILY")
	assert.Len(t, s.Next(0, utc(2014, 1, 1, 0, 0)), 1)
}
