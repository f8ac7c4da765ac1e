package recomb

import (
	"errors"
	"fmt"
)

// Domain errors for history builds.
var (
	// ErrInvalidParams indicates a cosmological parameter outside its
	// physical range.
	ErrInvalidParams = errors.New("recomb: invalid cosmological parameters")

	// ErrGridTooShort indicates a redshift grid with fewer than five points,
	// too short to seed the multistep derivative history.
	ErrGridTooShort = errors.New("recomb: grid too short for multistep seeding")

	// ErrUnknownModel indicates an unrecognized atomic-physics model name.
	ErrUnknownModel = errors.New("recomb: unknown model")

	// ErrUnknownMechanism indicates a mechanism tag the active model cannot
	// resolve.
	ErrUnknownMechanism = errors.New("recomb: unknown mechanism")

	// ErrHistorySize indicates a caller-supplied history whose length does
	// not match the parameter grid.
	ErrHistorySize = errors.New("recomb: history length does not match grid")
)

// RunError wraps a domain error with the operation that produced it.
type RunError struct {
	Op      string
	Detail  string
	Wrapped error
}

func (e *RunError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Wrapped, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }
