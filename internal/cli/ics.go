package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattdeluco/later/recurrence"
)

type icsOptions struct {
	from  string
	count int
}

// NewICSCommand creates the ics command.
func NewICSCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &icsOptions{}

	cmd := &cobra.Command{
		Use:   "ics <file>",
		Short: "Check the recurring events of an iCalendar file",
		Long: `Read a VCALENDAR file ("-" for stdin) and print, for each VEVENT, its
UID, RRULE and whether the rule is valid, followed by its next occurrences.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return runICS(rootOpts, opts, r, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start instant in RFC 3339 (default each event's start)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 3, "occurrences to list per event")
	return cmd
}

func runICS(rootOpts *RootOptions, opts *icsOptions, r io.Reader, w io.Writer) error {
	var from time.Time
	if opts.from != "" {
		t, err := time.ParseInLocation(time.RFC3339, opts.from, rootOpts.Location)
		if err != nil {
			return fmt.Errorf("invalid --from %q: %w", opts.from, err)
		}
		from = t
	}

	events, err := recurrence.EventsFromCalendar(r)
	if err != nil {
		return err
	}

	config := recurrence.DefaultEngineConfig
	config.Location = rootOpts.Location
	config.Logger = rootOpts.Logger
	engine := recurrence.NewEngineWithConfig(config)
	defer engine.Close()

	for _, ev := range events {
		if !ev.Info.IsRecurring() {
			fmt.Fprintf(w, "%s\t%s\t-\tsingle\n", ev.UID, ev.Summary)
			if ev.HasTime {
				fmt.Fprintf(w, "  %s\n", ev.Start.In(rootOpts.Location).Format(time.RFC3339))
			}
			continue
		}

		start := from
		if start.IsZero() {
			start = ev.Start
		}
		occurrences, err := engine.Occurrences(ev.Info, start, opts.count)
		if err != nil {
			rootOpts.Logger.Debug("event rule rejected", "uid", ev.UID, "error", err)
			fmt.Fprintf(w, "%s\t%s\t%s\tinvalid\n", ev.UID, ev.Summary, ev.Info.Rule)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\tvalid\n", ev.UID, ev.Summary, ev.Info.Rule)
		for _, t := range occurrences {
			fmt.Fprintf(w, "  %s\n", t.In(rootOpts.Location).Format(time.RFC3339))
		}
	}
	return nil
}
