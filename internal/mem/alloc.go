// Package mem provides owned buffer allocation.
package mem

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/seqbuf/internal/conv"
	"github.com/hupe1980/seqbuf/resource"
)

// MaxBytes is the largest single buffer Alloc will hand out
// (2^47 bytes on 64-bit platforms, 2^31 on 32-bit ones).
const MaxBytes int64 = 1 << (31 + 16*(^uint(0)>>63))

var (
	// ErrTooLarge is returned when a request exceeds MaxBytes or overflows.
	ErrTooLarge = errors.New("allocation too large")

	// ErrNegativeLength is returned for negative slot counts.
	ErrNegativeLength = errors.New("negative allocation length")
)

// Buffer is an exclusively owned allocation of len(Slots()) slots.
//
// The bytes it occupies are reserved against an optional resource.Controller
// for as long as the buffer is live. Free is the only release path and is
// idempotent, so every acquire is matched by exactly one release.
type Buffer[T any] struct {
	slots  []T
	bytes  int64
	budget *resource.Controller
}

// MaxLen returns the largest slot count Alloc accepts for T.
func MaxLen[T any]() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return int(^uint(0) >> 1)
	}
	n := MaxBytes / int64(size)
	if uint64(n) > uint64(^uint(0)>>1) {
		return int(^uint(0) >> 1)
	}
	return int(n)
}

// Alloc allocates a zeroed buffer of n slots, charging its size to budget.
// A nil budget only skips accounting. On error nothing is allocated and
// nothing stays reserved.
func Alloc[T any](n int, budget *resource.Controller) (Buffer[T], error) {
	if n < 0 {
		return Buffer[T]{}, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if n == 0 {
		return Buffer[T]{budget: budget}, nil
	}

	var zero T
	bytes, err := conv.ByteSize(n, unsafe.Sizeof(zero))
	if err != nil {
		return Buffer[T]{}, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	if bytes > MaxBytes {
		return Buffer[T]{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, bytes, MaxBytes)
	}

	if err := budget.AcquireMemory(bytes); err != nil {
		return Buffer[T]{}, err
	}

	return Buffer[T]{
		slots:  make([]T, n),
		bytes:  bytes,
		budget: budget,
	}, nil
}

// Slots returns the full allocation. The slice aliases the buffer and must
// not outlive it.
func (b *Buffer[T]) Slots() []T {
	return b.slots
}

// Len returns the number of allocated slots.
func (b *Buffer[T]) Len() int {
	return len(b.slots)
}

// Bytes returns the number of bytes charged to the budget.
func (b *Buffer[T]) Bytes() int64 {
	return b.bytes
}

// Free releases the allocation and its reservation.
func (b *Buffer[T]) Free() {
	if b.bytes > 0 {
		b.budget.ReleaseMemory(b.bytes)
	}
	b.slots = nil
	b.bytes = 0
}

// Take moves the allocation out of b, leaving b empty. The reservation
// travels with the returned buffer.
func (b *Buffer[T]) Take() Buffer[T] {
	out := *b
	b.slots = nil
	b.bytes = 0
	return out
}
