package seqbuf

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/seqbuf/internal/mem"
)

// Vector is a growable sequence backed by an exclusively owned buffer.
//
// Capacity follows a fixed policy per operation family:
//
//   - Push, EmplaceBack, Append and growing Resize reallocate to twice the
//     new size when the buffer is full.
//   - Insert, Emplace, Erase and their range forms reallocate to exactly
//     the new size.
//   - Assign, CopyFrom and the slice constructors allocate exactly the new size.
//   - Reserve only ever grows; ShrinkToFit reallocates to exactly Size().
//
// Positions are plain indices into the sequence. They stay meaningful across
// reallocation but not after the sequence shrinks below them. Slices returned
// by Data and pointers returned by Index alias the current buffer and must not
// be used after an operation that reallocates.
//
// A Vector is not safe for concurrent use. The zero value is an empty vector
// without logging, metrics or memory budget.
type Vector[T any] struct {
	buf  mem.Buffer[T]
	size int
	opts options
}

// New returns an empty vector. No buffer is allocated until the first insertion.
func New[T any](opts ...Option) *Vector[T] {
	return &Vector[T]{opts: applyOptions(opts)}
}

// WithSize returns a vector holding n zero values, with the growth margin
// applied to its capacity.
func WithSize[T any](n int, opts ...Option) (*Vector[T], error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	v := New[T](opts...)
	if n == 0 {
		return v, nil
	}
	if err := v.realloc(doubled(n, mem.MaxLen[T]()), ReasonGrow); err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// FromSlice returns a vector holding a copy of values, with capacity len(values).
func FromSlice[T any](values []T, opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	if err := v.AssignValues(values...); err != nil {
		return nil, err
	}
	return v, nil
}

// Of returns a vector holding values, with capacity len(values).
//
// Of panics if the buffer cannot be allocated; without a memory budget that
// only happens beyond MaxSize. Use FromSlice to handle the error.
func Of[T any](values ...T) *Vector[T] {
	v, err := FromSlice(values)
	if err != nil {
		panic(err)
	}
	return v
}

// Size returns the number of elements.
func (v *Vector[T]) Size() int { return v.size }

// Capacity returns the number of allocated slots.
func (v *Vector[T]) Capacity() int { return v.buf.Len() }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// MaxSize returns the largest capacity a single buffer may have.
func (v *Vector[T]) MaxSize() int { return mem.MaxLen[T]() }

// Data returns the live elements. The slice aliases the buffer.
func (v *Vector[T]) Data() []T {
	return v.buf.Slots()[:v.size:v.size]
}

func (v *Vector[T]) live() []T {
	return v.buf.Slots()[:v.size]
}

// replace installs a fresh buffer of newCap slots holding newSize elements
// written by fill. fill may read the current buffer, which is only freed
// after it returns. On allocation failure nothing changes.
func (v *Vector[T]) replace(newCap, newSize int, reason ReallocReason, fill func(dst []T)) error {
	next, err := mem.Alloc[T](newCap, v.opts.budget)
	if err != nil {
		return v.opts.allocFailed(reason, newCap, err)
	}

	fill(next.Slots())

	oldCap := v.buf.Len()
	v.buf.Free()
	v.buf = next
	v.size = newSize

	v.opts.reallocated(reason, oldCap, newCap, next.Bytes())
	return nil
}

// realloc moves the live elements into a buffer of newCap >= Size() slots.
func (v *Vector[T]) realloc(newCap int, reason ReallocReason) error {
	return v.replace(newCap, v.size, reason, func(dst []T) {
		copy(dst, v.live())
	})
}

// growFor makes room for n elements, applying the growth margin.
func (v *Vector[T]) growFor(n int) error {
	if n <= v.buf.Len() {
		return nil
	}
	return v.realloc(doubled(n, mem.MaxLen[T]()), ReasonGrow)
}

// Push appends value. Amortized O(1).
func (v *Vector[T]) Push(value T) error {
	if err := v.growFor(v.size + 1); err != nil {
		return err
	}
	v.buf.Slots()[v.size] = value
	v.size++
	return nil
}

// EmplaceBack appends a new element built in place by construct, which
// receives a pointer to the zeroed slot. A nil construct appends the zero value.
func (v *Vector[T]) EmplaceBack(construct func(slot *T)) error {
	if err := v.growFor(v.size + 1); err != nil {
		return err
	}
	if construct != nil {
		construct(&v.buf.Slots()[v.size])
	}
	v.size++
	return nil
}

// Pop removes and returns the last element.
func (v *Vector[T]) Pop() (T, error) {
	var zero T
	if v.size == 0 {
		return zero, ErrEmptyContainer
	}
	v.size--
	slots := v.buf.Slots()
	value := slots[v.size]
	slots[v.size] = zero
	return value, nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmptyContainer
	}
	return v.buf.Slots()[0], nil
}

// Back returns the last element.
func (v *Vector[T]) Back() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmptyContainer
	}
	return v.buf.Slots()[v.size-1], nil
}

// At returns the element at i, or an *IndexError when i is not in [0, Size()).
func (v *Vector[T]) At(i int) (T, error) {
	if err := checkIndex(i, v.size); err != nil {
		var zero T
		return zero, err
	}
	return v.buf.Slots()[i], nil
}

// Set replaces the element at i, or returns an *IndexError when i is not in
// [0, Size()).
func (v *Vector[T]) Set(i int, value T) error {
	if err := checkIndex(i, v.size); err != nil {
		return err
	}
	v.buf.Slots()[i] = value
	return nil
}

// Index returns a pointer to the slot at i without checking i against Size().
//
// Indices in [Size(), Capacity()) reach spare slots; anything else panics.
// The pointer is invalidated by the next reallocation.
func (v *Vector[T]) Index(i int) *T {
	return &v.buf.Slots()[i]
}

// Assign replaces the contents with count copies of value.
func (v *Vector[T]) Assign(count int, value T) error {
	if err := checkCount(count); err != nil {
		return err
	}
	return v.replace(count, count, ReasonExact, func(dst []T) {
		for i := range dst {
			dst[i] = value
		}
	})
}

// AssignRange replaces the contents with src[first:last]. src may be v.
func (v *Vector[T]) AssignRange(src *Vector[T], first, last int) error {
	if err := checkRange(first, last, src.size); err != nil {
		return err
	}
	n := last - first
	return v.replace(n, n, ReasonExact, func(dst []T) {
		copy(dst, src.live()[first:last])
	})
}

// AssignValues replaces the contents with values.
func (v *Vector[T]) AssignValues(values ...T) error {
	n := len(values)
	return v.replace(n, n, ReasonExact, func(dst []T) {
		copy(dst, values)
	})
}

// CopyFrom replaces the contents with a copy of src's elements.
// Elements are copied by assignment.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if src == v {
		return nil
	}
	return v.AssignRange(src, 0, src.size)
}

// Clone returns an independent vector with the same elements, capacity and
// options.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := &Vector[T]{opts: v.opts}
	if v.buf.Len() == 0 {
		return out, nil
	}
	err := out.replace(v.buf.Len(), v.size, ReasonClone, func(dst []T) {
		copy(dst, v.live())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveFrom releases v's buffer and takes over src's buffer and elements.
// src is left empty with zero capacity.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == v {
		return
	}
	v.buf.Free()
	v.buf = src.buf.Take()
	v.size = src.size
	src.size = 0
}

// Insert places value at pos, shifting later elements right.
// pos must be in [0, Size()].
func (v *Vector[T]) Insert(pos int, value T) error {
	return v.Emplace(pos, func(slot *T) { *slot = value })
}

// Emplace inserts a new element at pos built in place by construct.
func (v *Vector[T]) Emplace(pos int, construct func(slot *T)) error {
	if err := checkPosition(pos, v.size); err != nil {
		return err
	}
	n := v.size + 1
	return v.replace(n, n, ReasonExact, func(dst []T) {
		old := v.live()
		copy(dst, old[:pos])
		if construct != nil {
			construct(&dst[pos])
		}
		copy(dst[pos+1:], old[pos:])
	})
}

// InsertValues places values at pos, shifting later elements right.
func (v *Vector[T]) InsertValues(pos int, values ...T) error {
	if err := checkPosition(pos, v.size); err != nil {
		return err
	}
	return v.insertSlice(pos, values)
}

// InsertRange places src[first:last] at pos. src may be v.
func (v *Vector[T]) InsertRange(pos int, src *Vector[T], first, last int) error {
	if err := checkPosition(pos, v.size); err != nil {
		return err
	}
	if err := checkRange(first, last, src.size); err != nil {
		return err
	}
	return v.insertSlice(pos, src.live()[first:last])
}

func (v *Vector[T]) insertSlice(pos int, values []T) error {
	if len(values) == 0 {
		return nil
	}
	n := v.size + len(values)
	return v.replace(n, n, ReasonExact, func(dst []T) {
		old := v.live()
		copy(dst, old[:pos])
		copy(dst[pos:], values)
		copy(dst[pos+len(values):], old[pos:])
	})
}

// Erase removes the element at pos, shifting later elements left.
func (v *Vector[T]) Erase(pos int) error {
	if v.size == 0 {
		return ErrEmptyContainer
	}
	if err := checkIndex(pos, v.size); err != nil {
		return err
	}
	return v.eraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last).
func (v *Vector[T]) EraseRange(first, last int) error {
	if v.size == 0 {
		return ErrEmptyContainer
	}
	if err := checkRange(first, last, v.size); err != nil {
		return err
	}
	if first == last {
		return nil
	}
	return v.eraseRange(first, last)
}

func (v *Vector[T]) eraseRange(first, last int) error {
	n := v.size - (last - first)
	return v.replace(n, n, ReasonExact, func(dst []T) {
		old := v.live()
		copy(dst, old[:first])
		copy(dst[first:], old[last:])
	})
}

// Swap exchanges the contents of v and other in O(1).
// No element is copied; each buffer keeps its memory reservation.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf, other.buf = other.buf, v.buf
	v.size, other.size = other.size, v.size
}

// Resize sets the size to n. New elements are zero values. Growing past the
// capacity reallocates with the growth margin; shrinking keeps the buffer.
func (v *Vector[T]) Resize(n int) error {
	if err := checkCount(n); err != nil {
		return err
	}
	switch {
	case n > v.buf.Len():
		if err := v.realloc(doubled(n, mem.MaxLen[T]()), ReasonGrow); err != nil {
			return err
		}
	case n < v.size:
		clear(v.buf.Slots()[n:v.size])
	}
	v.size = n
	return nil
}

// Reserve grows the capacity to exactly n if n exceeds it. It never shrinks.
func (v *Vector[T]) Reserve(n int) error {
	if err := checkCount(n); err != nil {
		return err
	}
	if n <= v.buf.Len() {
		return nil
	}
	return v.realloc(n, ReasonReserve)
}

// ShrinkToFit reallocates so that Capacity() == Size().
func (v *Vector[T]) ShrinkToFit() error {
	if v.buf.Len() == v.size {
		return nil
	}
	return v.realloc(v.size, ReasonShrink)
}

// Clear removes all elements and keeps the capacity.
func (v *Vector[T]) Clear() {
	clear(v.live())
	v.size = 0
}

// Release frees the buffer and returns its reservation to the memory budget.
// The vector stays usable and empty.
func (v *Vector[T]) Release() {
	v.buf.Free()
	v.size = 0
}

// Append appends the elements of other, applying the growth margin.
// Appending a vector to itself duplicates its elements.
func (v *Vector[T]) Append(other *Vector[T]) error {
	n := other.size
	if n == 0 {
		return nil
	}
	if err := v.growFor(v.size + n); err != nil {
		return err
	}
	copy(v.buf.Slots()[v.size:v.size+n], other.buf.Slots()[:n])
	v.size += n
	return nil
}

// All returns an iterator over index/element pairs.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.buf.Slots()[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.buf.Slots()[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if i >= v.size {
				continue
			}
			if !yield(i, v.buf.Slots()[i]) {
				return
			}
		}
	}
}

// String renders the elements as "[ e1, e2, ..., en ]". An empty vector
// renders as "[  ]".
func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i, e := range v.live() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, e)
	}
	sb.WriteString(" ]")
	return sb.String()
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.live(), b.live())
}
