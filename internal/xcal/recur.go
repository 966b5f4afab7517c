// Package xcal renders recurrence rules as RFC 6321 xCal <recur> values.
package xcal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/mattdeluco/later/rrule"
)

// ICalendar is the xCal namespace.
const ICalendar = "urn:ietf:params:xml:ns:icalendar-2.0"

const (
	TagRRule = "rrule"
	TagRecur = "recur"
)

var errNoRecur = errors.New("no recur element")

// ToXML converts a rule to an xCal document rooted at <rrule>. Rule parts
// appear in canonical order; list parts become one element per value.
func ToXML(r *rrule.Rule) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement(TagRRule)
	root.CreateAttr("xmlns", ICalendar)
	recur := root.CreateElement(TagRecur)

	for _, part := range strings.Split(strings.TrimPrefix(r.String(), "RRULE:"), ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		tag := strings.ToLower(key)
		if key == "UNTIL" {
			recur.CreateElement(tag).SetText(untilToXML(value))
			continue
		}
		for _, v := range strings.Split(value, ",") {
			recur.CreateElement(tag).SetText(v)
		}
	}
	return doc
}

// Parse reads the first <recur> element of doc back into a rule.
func Parse(doc *etree.Document, opts ...rrule.Option) (*rrule.Rule, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("empty document")
	}
	recur := doc.FindElement("//" + TagRecur)
	if recur == nil {
		return nil, errNoRecur
	}

	var (
		keys   []string
		values = make(map[string][]string)
	)
	for _, el := range recur.ChildElements() {
		key := strings.ToUpper(el.Tag)
		text := strings.TrimSpace(el.Text())
		if key == "UNTIL" {
			text = untilFromXML(text)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = append(values[key], text)
	}

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + "=" + strings.Join(values[key], ",")
	}
	return rrule.Parse("RRULE:"+strings.Join(parts, ";"), opts...)
}

// Marshal renders a rule as indented xCal.
func Marshal(r *rrule.Rule) (string, error) {
	doc := ToXML(r)
	doc.Indent(2)
	return doc.WriteToString()
}

// Unmarshal parses an xCal document holding a <recur> element.
func Unmarshal(s string, opts ...rrule.Option) (*rrule.Rule, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("failed to parse xCal: %w", err)
	}
	return Parse(doc, opts...)
}

// untilToXML converts 20060102[T150405[Z]] to the extended form xCal uses.
func untilToXML(v string) string {
	if len(v) < 8 {
		return v
	}
	out := v[:4] + "-" + v[4:6] + "-" + v[6:8]
	if len(v) >= 15 && v[8] == 'T' {
		out += "T" + v[9:11] + ":" + v[11:13] + ":" + v[13:15] + v[15:]
	}
	return out
}

func untilFromXML(v string) string {
	return strings.NewReplacer("-", "", ":", "").Replace(v)
}
