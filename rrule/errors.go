package rrule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRule marks a rule that violates RFC 5545. Its message is the
	// error reported on the canonical failed recurrence.
	ErrInvalidRule = errors.New("Invalid RRULE")
	// ErrUnsupported marks a legal rule this package cannot evaluate.
	ErrUnsupported = errors.New("unsupported RRULE")
	// ErrMissingPrefix is returned when a content line lacks "RRULE:".
	ErrMissingPrefix = errors.New("missing RRULE: prefix")

	errMissingValue  = errors.New("rule part has no '=' separator")
	errDuplicatePart = errors.New("rule part given more than once")
	errBadWeekday    = errors.New("unknown weekday")
	errBadUntil      = errors.New("expected YYYYMMDD[THHMMSS[Z]]")
)

// MalformedValueError reports a rule part whose value could not be converted.
type MalformedValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed %s value %q: %v", e.Key, e.Value, e.Err)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRule, fmt.Sprintf(format, args...))
}
