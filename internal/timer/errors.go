package timer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned for a duration that is not a positive number of seconds.
	ErrInvalidConfig = errors.New("invalid duration")
	// ErrInvalidTransition is returned when an operation is not allowed in the current status.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidTime is returned when an alarm target cannot be parsed.
	ErrInvalidTime = errors.New("invalid alarm time")
	// ErrAlreadyRunning is returned by Start on a running session.
	ErrAlreadyRunning = fmt.Errorf("%w: already running", ErrInvalidTransition)
)

func transitionError(op string, st Status) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, st)
}
