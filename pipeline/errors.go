package pipeline

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

var (
	// ErrInvariant marks a buffer-accounting bug. There is no local recovery.
	ErrInvariant = errors.New("pipeline invariant violated")

	ErrNotPrimed     = errors.New("pipeline not primed")
	ErrAlreadyPrimed = errors.New("pipeline already primed")
	ErrLeaseReleased = errors.New("lease released")

	// ErrBusHalted is returned by a Bus that no longer accepts frames. The
	// flush stage recycles the buffer without counting or logging it.
	ErrBusHalted = errors.New("bus halted")
)

// invariant returns a stack-carrying error wrapping ErrInvariant.
func invariant(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
	return goerrors.Wrap(err, 1)
}
