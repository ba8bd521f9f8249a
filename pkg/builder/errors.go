package builder

import (
	"errors"
	"fmt"
)

// Builder errors. Both indicate events that arrived out of order; they are
// never retried.
var (
	// ErrPrecondition is returned when an operation targets a parent that does
	// not exist, e.g. a line before any area.
	ErrPrecondition = errors.New("builder precondition violated")

	// ErrDepthUnderflow is returned when a node is closed while none is open.
	ErrDepthUnderflow = fmt.Errorf("%w: close without open node", ErrPrecondition)
)

// precondition builds an ErrPrecondition naming the operation and the missing parent.
func precondition(op, missing string) error {
	return fmt.Errorf("%w: %s requires %s", ErrPrecondition, op, missing)
}

func errMissingNode(level int) error {
	return fmt.Errorf("%w: no node at open level %d", ErrPrecondition, level)
}
