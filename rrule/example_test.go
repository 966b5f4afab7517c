package rrule_test

import (
	"errors"
	"fmt"

	"github.com/mattdeluco/later/rrule"
)

func ExampleParseICalRule() {
	rec := rrule.ParseICalRule("RRULE:FREQ=MONTHLY;INTERVAL=3;BYMONTHDAY=1,-1;COUNT=4")
	for i, s := range rec.Schedules {
		for _, c := range s.Constraints {
			fmt.Println(i, c.Period.Name(), c.Values)
		}
	}
	fmt.Println("count", rec.Count.MustGet())
	// Output:
	// 0 month [1 4 7 10]
	// 0 day [1]
	// 1 month [1 4 7 10]
	// 1 negative day [-1]
	// count 4
}

func ExampleParseICalRule_invalid() {
	rec := rrule.ParseICalRule("RRULE:FREQ=WEEKLY;BYMONTHDAY=1,2,10")
	fmt.Println(len(rec.Schedules), errors.Is(rec.Err, rrule.ErrInvalidRule))
	fmt.Println(rec.Err)
	// Output:
	// 0 true
	// Invalid RRULE: BYMONTHDAY is not allowed with FREQ=WEEKLY
}

func ExampleRule_String() {
	r, err := rrule.Parse("RRULE:BYDAY=-1FR;FREQ=MONTHLY;COUNT=2")
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output: RRULE:FREQ=MONTHLY;COUNT=2;BYDAY=-1FR
}
