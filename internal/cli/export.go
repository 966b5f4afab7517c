package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mattdeluco/later/rrule"
)

// ProductID is written as PRODID on exported calendars.
const ProductID = "-//later//RRULE export//EN"

type exportOptions struct {
	start    string
	duration time.Duration
	summary  string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <rrule>",
		Short: "Write a VCALENDAR with one event recurring by the rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, args[0], time.Now(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.start, "start", "", "DTSTART in RFC 3339 (required)")
	cmd.Flags().DurationVar(&opts.duration, "duration", time.Hour, "event length")
	cmd.Flags().StringVar(&opts.summary, "summary", "", "event summary")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func runExport(rootOpts *RootOptions, opts *exportOptions, text string, now time.Time, w io.Writer) error {
	start, err := time.ParseInLocation(time.RFC3339, opts.start, rootOpts.Location)
	if err != nil {
		return fmt.Errorf("invalid --start %q: %w", opts.start, err)
	}

	r, err := rrule.Parse(ruleLine(text), rootOpts.ruleOptions()...)
	if err != nil {
		return fmt.Errorf("failed to parse rule: %w", err)
	}
	if err := rrule.Validate(r); err != nil {
		return err
	}

	cal := newCalendar(r, start.UTC(), opts.duration, opts.summary, now)
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func newCalendar(r *rrule.Rule, start time.Time, duration time.Duration, summary string, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.New().String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(duration))
	if summary != "" {
		event.Props.SetText(ical.PropSummary, summary)
	}

	rule := ical.NewProp(ical.PropRecurrenceRule)
	rule.Value = strings.TrimPrefix(r.String(), "RRULE:")
	event.Props.Set(rule)

	cal.Children = append(cal.Children, event.Component)
	return cal
}
