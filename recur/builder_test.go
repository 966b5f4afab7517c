package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattdeluco/later/modifier"
	"github.com/mattdeluco/later/period"
)

func TestBuilder_Every(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		unit  period.Period
		want  []int
	}{
		{"every 15 seconds", func(b *Builder) *Builder { return b.Every(15).Second() }, period.Second, []int{0, 15, 30, 45}},
		{"every 15 minutes", func(b *Builder) *Builder { return b.Every(15).Minute() }, period.Minute, []int{0, 15, 30, 45}},
		{"every 6 hours", func(b *Builder) *Builder { return b.Every(6).Hour() }, period.Hour, []int{0, 6, 12, 18}},
		{"every 11 days", func(b *Builder) *Builder { return b.Every(11).DayOfMonth() }, period.Day, []int{1, 12, 23}},
		{"every 2 weeks", func(b *Builder) *Builder { return b.Every(2).WeekOfMonth() }, period.WeekOfMonth, []int{1, 3, 5}},
		{"every 3 months", func(b *Builder) *Builder { return b.Every(3).Month() }, period.Month, []int{1, 4, 7, 10}},
		{"every 100 years", func(b *Builder) *Builder { return b.Every(100).Year() }, period.Year, []int{1970, 2070, 2170, 2270, 2370}},
		{"non-positive interval means every unit", func(b *Builder) *Builder { return b.Every(0).Month() }, period.Month, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.build(New()).Build()
			require.Len(t, r.Schedules, 1)
			assert.Equal(t, tt.want, r.Schedules[0].Values(tt.unit))
			assert.Empty(t, r.Exceptions)
		})
	}
}

func TestBuilder_OnMergesAndDeduplicates(t *testing.T) {
	r := New().
		On(4).DayOfWeek().
		On(5, 1, 4).DayOfWeek().
		Every(1).WeekOfMonth().
		Build()

	require.Len(t, r.Schedules, 1)
	s := r.Schedules[0]
	assert.Equal(t, []int{4, 5, 1}, s.Values(period.DayOfWeek))
	// Six, not five: 2015-05-31 falls in the sixth week of its month.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.Values(period.WeekOfMonth))
	assert.Nil(t, s.Values(period.Month))
	assert.Equal(t, map[string][]int{
		"day of week":   {4, 5, 1},
		"week of month": {1, 2, 3, 4, 5, 6},
	}, s.Map())
}

func TestBuilder_CustomPeriod(t *testing.T) {
	negDay := modifier.MustNegative(period.Day)
	r := New().On(1, 15).DayOfMonth().On(-1).Period(negDay).Build()

	require.Len(t, r.Schedules, 1)
	s := r.Schedules[0]
	assert.Equal(t, []int{1, 15}, s.Values(period.Day))
	assert.Equal(t, []int{-1}, s.Values(negDay))
	require.Len(t, s.Constraints, 2)
	assert.Equal(t, "negative day", s.Constraints[1].Period.Name())
}

func TestBuilder_ExceptionsAndLimits(t *testing.T) {
	until := time.Date(2014, 7, 31, 18, 0, 0, 0, time.UTC)
	r := New().
		Every(1).Hour().
		Limit(3).
		Except().After(until).
		Build()

	require.Len(t, r.Schedules, 1)
	require.Len(t, r.Exceptions, 1)
	assert.Equal(t, 3, r.Count.MustGet())

	cutoff, ok := r.Exceptions[0].After.Get()
	require.True(t, ok)
	assert.Equal(t, until, cutoff)
	assert.Empty(t, r.Exceptions[0].Constraints)
	assert.Nil(t, r.Err)
}

func TestBuilder_And(t *testing.T) {
	r := New().
		On(1).Month().
		And().On(6).Month().
		And().
		Build()

	require.Len(t, r.Schedules, 2, "empty trailing set is dropped")
	assert.Equal(t, []int{1}, r.Schedules[0].Values(period.Month))
	assert.Equal(t, []int{6}, r.Schedules[1].Values(period.Month))
}

func TestInvalid(t *testing.T) {
	err := assert.AnError
	r := Invalid(err)
	assert.Empty(t, r.Schedules)
	assert.NotNil(t, r.Schedules)
	assert.Empty(t, r.Exceptions)
	assert.Equal(t, err, r.Err)
	assert.True(t, r.Count.IsAbsent())
}
