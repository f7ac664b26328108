package seqbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContainer is returned when an operation needs at least one
	// element and the container is empty.
	ErrEmptyContainer = errors.New("empty container")

	// ErrIndexOutOfBounds is returned by checked accessors and positional
	// operations when a position lies outside the valid range.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrAllocationFailure is returned when a backing buffer cannot be
	// obtained, either because the memory budget is exhausted or because
	// the request exceeds MaxSize.
	//
	// The underlying cause is preserved and can be matched with errors.Is.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrInvalidArgument is returned for negative counts, inverted ranges,
	// unsupported shift amounts and malformed bit strings.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IndexError describes a rejected position.
//
// It unwraps to ErrIndexOutOfBounds.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of bounds: index %d, size %d", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// checkIndex validates an element position in [0, size).
// Emptiness is tested first so no subtraction on size is ever needed.
func checkIndex(i, size int) error {
	if size == 0 || i < 0 || i >= size {
		return &IndexError{Index: i, Size: size}
	}
	return nil
}

// checkPosition validates an insertion position in [0, size].
func checkPosition(pos, size int) error {
	if pos < 0 || pos > size {
		return &IndexError{Index: pos, Size: size}
	}
	return nil
}

// checkRange validates a half-open range [first, last) within [0, size].
func checkRange(first, last, size int) error {
	if first > last {
		return fmt.Errorf("%w: inverted range [%d, %d)", ErrInvalidArgument, first, last)
	}
	if first < 0 {
		return &IndexError{Index: first, Size: size}
	}
	if last > size {
		return &IndexError{Index: last, Size: size}
	}
	return nil
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidArgument, n)
	}
	return nil
}

func allocError(err error) error {
	return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
}
