package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattdeluco/later/rrule"
	"github.com/mattdeluco/later/schedule"
)

type nextOptions struct {
	from  string
	count int
	prev  bool
}

// NewNextCommand creates the next command.
func NewNextCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &nextOptions{}

	cmd := &cobra.Command{
		Use:   "next <rrule>",
		Short: "List occurrences of an RRULE",
		Long: `List the instants at or after --from that match the rule, one per
line in RFC 3339. With --prev the walk goes backwards from --from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(rootOpts, opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start instant in RFC 3339 (default now)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of occurrences (default the rule's COUNT, or 1)")
	cmd.Flags().BoolVar(&opts.prev, "prev", false, "walk backwards")
	return cmd
}

func runNext(rootOpts *RootOptions, opts *nextOptions, text string, w io.Writer) error {
	from := time.Now().In(rootOpts.Location)
	if opts.from != "" {
		t, err := time.ParseInLocation(time.RFC3339, opts.from, rootOpts.Location)
		if err != nil {
			return fmt.Errorf("invalid --from %q: %w", opts.from, err)
		}
		from = t.In(rootOpts.Location)
	}

	rec := rrule.ParseICalRule(ruleLine(text), rootOpts.ruleOptions()...)
	if rec.Err != nil {
		return rec.Err
	}

	var occurrences []time.Time
	if opts.prev {
		occurrences = schedule.New(rec).Prev(opts.count, from)
	} else {
		occurrences = schedule.New(rec).Next(opts.count, from)
	}
	rootOpts.Logger.Debug("evaluated rule", "from", from, "occurrences", len(occurrences))

	for _, t := range occurrences {
		if _, err := fmt.Fprintln(w, t.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
