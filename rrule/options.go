package rrule

import (
	"io"
	"log/slog"
	"time"
)

type options struct {
	location *time.Location
	logger   *slog.Logger
}

// Option configures parsing and compilation.
type Option func(*options)

// WithLocation sets the location for UNTIL values without a trailing Z.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithLogger sets the logger used for debug output. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		location: time.Local,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
