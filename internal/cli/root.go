// Package cli implements the later command line.
package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattdeluco/later/rrule"
)

// EnvPrefix prefixes the environment variables bound to global flags.
const EnvPrefix = "LATER"

// RootOptions holds global flags for all commands, resolved before any
// subcommand runs.
type RootOptions struct {
	Verbose  bool
	Location *time.Location
	Logger   *slog.Logger
}

// NewRootCommand creates the root command for the later CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "later",
		Short: "Parse, check and evaluate iCalendar recurrence rules",
		Long: `later compiles RFC 5545 RRULE values into constraint schedules and
evaluates them. Invalid rules are reported, never guessed at.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(v, cmd)
		},
	}

	cmd.PersistentFlags().String("tz", "UTC", "time zone for floating UNTIL values and output (env LATER_TZ)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr (env LATER_VERBOSE)")
	_ = v.BindPFlag("tz", cmd.PersistentFlags().Lookup("tz"))
	_ = v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewNextCommand(opts))
	cmd.AddCommand(NewICSCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

func (o *RootOptions) resolve(v *viper.Viper, cmd *cobra.Command) error {
	tz := v.GetString("tz")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", tz, err)
	}
	o.Location = loc
	o.Verbose = v.GetBool("verbose")

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *RootOptions) ruleOptions() []rrule.Option {
	return []rrule.Option{rrule.WithLocation(o.Location), rrule.WithLogger(o.Logger)}
}

// ruleLine accepts a rule with or without its "RRULE:" name.
func ruleLine(s string) string {
	s = strings.TrimSpace(s)
	if name, _, ok := strings.Cut(s, ":"); ok && strings.EqualFold(name, "RRULE") {
		return s
	}
	return "RRULE:" + s
}
