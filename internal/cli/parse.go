package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mattdeluco/later/internal/xcal"
	"github.com/mattdeluco/later/rrule"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <rrule>",
		Short: "Parse an RRULE and show its compiled schedule",
		Long: `Parse an RRULE value, check it against RFC 5545 and print the
constraint sets it compiles to. The "RRULE:" name is optional.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format) {
				return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format (text|json|yaml|xcal)")
	return cmd
}

func runParse(opts *RootOptions, text, format string, w io.Writer) error {
	r, err := rrule.Parse(ruleLine(text), opts.ruleOptions()...)
	if err != nil {
		return fmt.Errorf("failed to parse rule: %w", err)
	}
	rec := rrule.Compile(r, opts.ruleOptions()...)

	switch format {
	case FormatXCal:
		out, err := xcal.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to render xCal: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatJSON:
		return writeJSON(w, NewRuleView(r, rec))
	case FormatYAML:
		return writeYAML(w, NewRuleView(r, rec))
	default:
		return NewRuleView(r, rec).writeText(w)
	}
}
