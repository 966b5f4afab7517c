package xcal

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattdeluco/later/rrule"
)

func TestToXML(t *testing.T) {
	r, err := rrule.Parse("RRULE:FREQ=MONTHLY;BYDAY=1SU,-1FR;BYMONTH=1,7;UNTIL=20141231T235959Z;WKST=MO")
	require.NoError(t, err)

	doc := ToXML(r)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, TagRRule, root.Tag)
	assert.Equal(t, ICalendar, root.SelectAttrValue("xmlns", ""))

	recur := root.SelectElement(TagRecur)
	require.NotNil(t, recur)

	var got []string
	for _, el := range recur.ChildElements() {
		got = append(got, el.Tag+"="+el.Text())
	}
	assert.Equal(t, []string{
		"freq=MONTHLY",
		"until=2014-12-31T23:59:59Z",
		"byday=1SU",
		"byday=-1FR",
		"bymonth=1",
		"bymonth=7",
		"wkst=MO",
	}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		want    string
		wantErr bool
	}{
		{
			name:    "empty document",
			xml:     "",
			wantErr: true,
		},
		{
			name:    "no recur element",
			xml:     `<?xml version="1.0" encoding="utf-8"?><rrule xmlns="urn:ietf:params:xml:ns:icalendar-2.0"/>`,
			wantErr: true,
		},
		{
			name: "rfc 6321 example",
			xml: `<?xml version="1.0" encoding="utf-8"?>
<rrule xmlns="urn:ietf:params:xml:ns:icalendar-2.0">
  <recur>
    <freq>YEARLY</freq>
    <count>5</count>
    <byday>-1SU</byday>
    <bymonth>10</bymonth>
  </recur>
</rrule>`,
			want: "RRULE:FREQ=YEARLY;COUNT=5;BYDAY=-1SU;BYMONTH=10",
		},
		{
			name: "prefixed namespace and date until",
			xml: `<x:rrule xmlns:x="urn:ietf:params:xml:ns:icalendar-2.0">
<x:recur><x:freq>DAILY</x:freq><x:until>2024-03-01</x:until><x:byhour>9</x:byhour><x:byhour>17</x:byhour></x:recur>
</x:rrule>`,
			want: "RRULE:FREQ=DAILY;UNTIL=20240301;BYHOUR=9,17",
		},
		{
			name:    "malformed value",
			xml:     `<rrule><recur><freq>DAILY</freq><count>many</count></recur></rrule>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.xml, rrule.WithLocation(time.UTC))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_NilDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse(etree.NewDocument())
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	rules := []string{
		"RRULE:FREQ=HOURLY;COUNT=3",
		"RRULE:FREQ=WEEKLY;UNTIL=20240131T090000;INTERVAL=2;BYDAY=MO,WE;WKST=SU",
		"RRULE:FREQ=YEARLY;BYMONTHDAY=-1;BYYEARDAY=100,200;BYWEEKNO=-1;BYMONTH=2",
		"RRULE:FREQ=MINUTELY;BYSECOND=0,30;BYMINUTE=15;BYSETPOS=1",
	}
	est := rrule.WithLocation(time.FixedZone("EST", -5*60*60))
	for _, s := range rules {
		t.Run(s, func(t *testing.T) {
			r, err := rrule.Parse(s, est)
			require.NoError(t, err)

			out, err := Marshal(r)
			require.NoError(t, err)
			assert.Contains(t, out, `<rrule xmlns="`+ICalendar+`">`)

			back, err := Unmarshal(out, est)
			require.NoError(t, err)
			assert.Equal(t, s, back.String())
		})
	}
}

func TestUntilConversion(t *testing.T) {
	tests := []struct {
		ical string
		xcal string
	}{
		{"20240301", "2024-03-01"},
		{"20240301T090000", "2024-03-01T09:00:00"},
		{"20240301T090000Z", "2024-03-01T09:00:00Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.xcal, untilToXML(tt.ical))
		assert.Equal(t, tt.ical, untilFromXML(tt.xcal))
	}
	assert.Equal(t, "2024", untilToXML("2024"))
}
