package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrWipeout is matched by every [*WipeoutError] via errors.Is.
	ErrWipeout = errors.New("domain wipeout")

	// ErrNoSolution is returned by [Solver.Solve] when the search space was
	// exhausted without finding a solution.
	ErrNoSolution = errors.New("no solution")

	// ErrLimitReached is returned when the node limit or timeout stopped the
	// search before it could conclude.
	ErrLimitReached = errors.New("search limit reached")
)

// WipeoutError reports that a variable's domain became empty.
type WipeoutError struct {
	Var string // name of the emptied variable
}

// Error implements the error interface.
func (e *WipeoutError) Error() string {
	return fmt.Sprintf("domain wipeout on %s", e.Var)
}

// Is makes errors.Is(err, ErrWipeout) succeed for any WipeoutError.
func (e *WipeoutError) Is(target error) bool { return target == ErrWipeout }

// IsWipeout reports whether err signals a domain wipeout.
func IsWipeout(err error) bool { return errors.Is(err, ErrWipeout) }
