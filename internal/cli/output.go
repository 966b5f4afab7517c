package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mattdeluco/later/recur"
	"github.com/mattdeluco/later/rrule"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXCal = "xcal"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML, FormatXCal}

// RuleView is the printable form of a parsed and compiled rule.
type RuleView struct {
	Rule       string       `json:"rule" yaml:"rule"`
	Valid      bool         `json:"valid" yaml:"valid"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
	Count      *int         `json:"count,omitempty" yaml:"count,omitempty"`
	Schedules  []SetView    `json:"schedules" yaml:"schedules"`
	Exceptions []SetView    `json:"exceptions" yaml:"exceptions"`
	Ignored    []rrule.Part `json:"ignored,omitempty" yaml:"ignored,omitempty"`
}

// SetView is one constraint set keyed by period name.
type SetView struct {
	Constraints map[string][]int `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	After       *time.Time       `json:"after,omitempty" yaml:"after,omitempty"`
}

// NewRuleView builds the view of rule r compiled into rec.
func NewRuleView(r *rrule.Rule, rec *recur.Recurrence) RuleView {
	view := RuleView{
		Rule:       r.String(),
		Valid:      rec.Err == nil,
		Schedules:  setViews(rec.Schedules),
		Exceptions: setViews(rec.Exceptions),
		Ignored:    slices.Clone(r.Extra),
	}
	if rec.Err != nil {
		view.Error = rec.Err.Error()
	}
	if count, ok := rec.Count.Get(); ok {
		view.Count = &count
	}
	return view
}

func setViews(sets []recur.ConstraintSet) []SetView {
	views := make([]SetView, 0, len(sets))
	for _, set := range sets {
		view := SetView{}
		if len(set.Constraints) > 0 {
			view.Constraints = set.Map()
		}
		if after, ok := set.After.Get(); ok {
			view.After = &after
		}
		views = append(views, view)
	}
	return views
}

// writeText prints the view one constraint per line, periods sorted by name.
func (v RuleView) writeText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, v.Rule); err != nil {
		return err
	}
	if !v.Valid {
		_, err := fmt.Fprintf(w, "invalid: %s\n", v.Error)
		return err
	}
	if v.Count != nil {
		fmt.Fprintf(w, "count: %d\n", *v.Count)
	}
	for i, s := range v.Schedules {
		fmt.Fprintf(w, "schedule %d:\n", i+1)
		s.writeText(w)
	}
	for i, s := range v.Exceptions {
		fmt.Fprintf(w, "exception %d:\n", i+1)
		s.writeText(w)
	}
	for _, p := range v.Ignored {
		fmt.Fprintf(w, "ignored: %s=%s\n", p.Key, p.Value)
	}
	return nil
}

func (s SetView) writeText(w io.Writer) {
	names := make([]string, 0, len(s.Constraints))
	for name := range s.Constraints {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %v\n", name, s.Constraints[name])
	}
	if s.After != nil {
		fmt.Fprintf(w, "  after %s\n", s.After.Format(time.RFC3339))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
