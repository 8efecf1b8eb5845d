package trie

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is the sentinel wrapped by every CapacityError.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityError reports that a trie or its output array outgrew the bit
// width of the chosen state layout. Rebuilding with a wider layout recovers.
type CapacityError struct {
	Layout string // layout name, e.g. "State8"
	Limit  string // "MaxState", "MaxOutput" or "MaxWords"
	Max    uint64
	Got    uint64
}

// Error implements the error interface
func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s %s exceeded: %d > %d", e.Layout, e.Limit, e.Got, e.Max)
}

// Unwrap returns ErrCapacityExceeded
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
