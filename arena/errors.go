package arena

import (
	"errors"
	"fmt"
)

// ErrInvalidInput rejects malformed species, move or level data before any
// battle state exists. Callers test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid battle input")

// ErrInternalInvariant marks a state the clamping rules make unreachable
// (negative HP and the like). It is panicked, not returned: hitting it
// means the calculator has a bug, and recovering would hide it.
var ErrInternalInvariant = errors.New("battle invariant violated")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
