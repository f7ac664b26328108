package seqbuf

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/seqbuf/internal/bitset"
	"github.com/hupe1980/seqbuf/internal/mem"
)

// Word is the set of storage word types a BitVector can pack bits into.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits is a BitVector packing 8 bits per storage word.
type Bits = BitVector[uint8]

// BitVector is a growable sequence of booleans packed one bit per element
// into words of type W.
//
// Logical bit i lives in word i/BitsPerWord() at bit position
// (BitsPerWord()-1) - i%BitsPerWord(), so the first bit of each word is its
// most significant one. Bits past Size() are always zero.
//
// Capacity is counted in bits. Every allocation derives its word count as
// ceil(bits / BitsPerWord()). Growth to n bits reserves
// 2*ceil(n/BitsPerWord()) words; Insert, Erase, Assign, CopyFrom and the
// slice constructors allocate exactly the new size; ShrinkToFit sets
// Capacity() to Size().
//
// A BitVector is not safe for concurrent use.
type BitVector[W Word] struct {
	buf     mem.Buffer[W]
	size    int
	capBits int
	opts    options
}

// NewBitVector returns an empty bit vector.
func NewBitVector[W Word](opts ...Option) *BitVector[W] {
	return &BitVector[W]{opts: applyOptions(opts)}
}

// BitVectorWithSize returns a bit vector of n zero bits, with the growth
// margin applied to its capacity.
func BitVectorWithSize[W Word](n int, opts ...Option) (*BitVector[W], error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	b := NewBitVector[W](opts...)
	if err := b.Resize(n); err != nil {
		return nil, err
	}
	return b, nil
}

// BitVectorFromBools returns a bit vector holding values, with capacity
// len(values) bits.
func BitVectorFromBools[W Word](values []bool, opts ...Option) (*BitVector[W], error) {
	b := NewBitVector[W](opts...)
	if err := b.AssignValues(values...); err != nil {
		return nil, err
	}
	return b, nil
}

// BitsOf returns a Bits holding values.
//
// BitsOf panics if the buffer cannot be allocated, which without a memory
// budget only happens beyond MaxSize.
func BitsOf(values ...bool) *Bits {
	b, err := BitVectorFromBools[uint8](values)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBits parses a '0'/'1' string, as produced by ToString, into Bits.
func ParseBits(s string, opts ...Option) (*Bits, error) {
	return ParseBitVector[uint8](s, opts...)
}

// ParseBitVector parses a '0'/'1' string, as produced by ToString.
func ParseBitVector[W Word](s string, opts ...Option) (*BitVector[W], error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return nil, fmt.Errorf("%w: invalid bit %q at offset %d", ErrInvalidArgument, s[i], i)
		}
	}
	b := NewBitVector[W](opts...)
	err := b.replace(len(s), len(s), ReasonExact, func(dst []W) {
		for i := 0; i < len(s); i++ {
			if s[i] == '1' {
				bitset.Put(dst, i, true)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Size returns the number of bits.
func (b *BitVector[W]) Size() int { return b.size }

// Capacity returns the bit capacity.
func (b *BitVector[W]) Capacity() int { return b.capBits }

// Words returns the number of allocated storage words.
func (b *BitVector[W]) Words() int { return b.buf.Len() }

// BitsPerWord returns the width of W in bits.
func (b *BitVector[W]) BitsPerWord() int { return bitset.Width[W]() }

// Empty reports whether the bit vector holds no bits.
func (b *BitVector[W]) Empty() bool { return b.size == 0 }

// MaxSize returns the largest bit capacity a single buffer may have.
func (b *BitVector[W]) MaxSize() int {
	return maxWords[W]() * bitset.Width[W]()
}

// Data returns the words holding the live bits. The slice aliases the buffer.
func (b *BitVector[W]) Data() []W {
	n := bitset.WordsFor[W](b.size)
	return b.buf.Slots()[:n:n]
}

func (b *BitVector[W]) live() []W {
	return b.buf.Slots()[:bitset.WordsFor[W](b.size)]
}

func maxWords[W Word]() int {
	// Keep the bit count representable as int.
	return min(mem.MaxLen[W](), int(^uint(0)>>1)/bitset.Width[W]())
}

// replace installs a fresh buffer sized for capBits bits holding newSize
// bits written by fill. fill may read the current buffer. On allocation
// failure nothing changes. Logs and metrics see word counts.
func (b *BitVector[W]) replace(capBits, newSize int, reason ReallocReason, fill func(dst []W)) error {
	words := bitset.WordsFor[W](capBits)
	next, err := mem.Alloc[W](words, b.opts.budget)
	if err != nil {
		return b.opts.allocFailed(reason, words, err)
	}

	fill(next.Slots())
	bitset.ClearTail(next.Slots(), newSize)

	oldWords := b.buf.Len()
	b.buf.Free()
	b.buf = next
	b.size = newSize
	b.capBits = capBits

	b.opts.reallocated(reason, oldWords, words, next.Bytes())
	return nil
}

// realloc moves the live bits into a buffer for capBits >= Size() bits.
func (b *BitVector[W]) realloc(capBits int, reason ReallocReason) error {
	return b.replace(capBits, b.size, reason, func(dst []W) {
		copy(dst, b.live())
	})
}

// growFor makes room for n bits, reserving twice the words n needs.
func (b *BitVector[W]) growFor(n int) error {
	if n <= b.capBits {
		return nil
	}
	words := doubled(bitset.WordsFor[W](n), maxWords[W]())
	return b.realloc(words*bitset.Width[W](), ReasonGrow)
}

// BitAt reports bit i without checking i against Size().
func (b *BitVector[W]) BitAt(i int) bool {
	return bitset.Get(b.buf.Slots(), i)
}

// SetBit sets bit i to v without checking i against Size().
// Writing past Size() breaks the zero-tail invariant.
func (b *BitVector[W]) SetBit(i int, v bool) {
	bitset.Put(b.buf.Slots(), i, v)
}

// Ref returns a handle to bit i without checking i against Size().
// The handle is invalidated by the next reallocation.
func (b *BitVector[W]) Ref(i int) BitRef[W] {
	width := bitset.Width[W]()
	return BitRef[W]{
		word: &b.buf.Slots()[i/width],
		mask: bitset.Mask[W](i),
	}
}

// RefAt returns a handle to bit i, or an *IndexError when i is not in
// [0, Size()).
func (b *BitVector[W]) RefAt(i int) (BitRef[W], error) {
	if err := checkIndex(i, b.size); err != nil {
		return BitRef[W]{}, err
	}
	return b.Ref(i), nil
}

// FrontRef returns a handle to the first bit.
func (b *BitVector[W]) FrontRef() (BitRef[W], error) {
	if b.size == 0 {
		return BitRef[W]{}, ErrEmptyContainer
	}
	return b.Ref(0), nil
}

// BackRef returns a handle to the last bit.
func (b *BitVector[W]) BackRef() (BitRef[W], error) {
	if b.size == 0 {
		return BitRef[W]{}, ErrEmptyContainer
	}
	return b.Ref(b.size - 1), nil
}

// At returns bit i, or an *IndexError when i is not in [0, Size()).
func (b *BitVector[W]) At(i int) (bool, error) {
	if err := checkIndex(i, b.size); err != nil {
		return false, err
	}
	return b.BitAt(i), nil
}

// Set sets bit i to v, or returns an *IndexError when i is not in [0, Size()).
func (b *BitVector[W]) Set(i int, v bool) error {
	if err := checkIndex(i, b.size); err != nil {
		return err
	}
	b.SetBit(i, v)
	return nil
}

// Front returns the first bit.
func (b *BitVector[W]) Front() (bool, error) {
	if b.size == 0 {
		return false, ErrEmptyContainer
	}
	return b.BitAt(0), nil
}

// Back returns the last bit.
func (b *BitVector[W]) Back() (bool, error) {
	if b.size == 0 {
		return false, ErrEmptyContainer
	}
	return b.BitAt(b.size - 1), nil
}

// Push appends v. Amortized O(1).
func (b *BitVector[W]) Push(v bool) error {
	if err := b.growFor(b.size + 1); err != nil {
		return err
	}
	b.SetBit(b.size, v)
	b.size++
	return nil
}

// Pop removes and returns the last bit.
func (b *BitVector[W]) Pop() (bool, error) {
	if b.size == 0 {
		return false, ErrEmptyContainer
	}
	b.size--
	v := b.BitAt(b.size)
	b.SetBit(b.size, false)
	return v, nil
}

// Assign replaces the contents with count copies of v.
func (b *BitVector[W]) Assign(count int, v bool) error {
	if err := checkCount(count); err != nil {
		return err
	}
	return b.replace(count, count, ReasonExact, func(dst []W) {
		if v {
			for i := range dst {
				dst[i] = ^W(0)
			}
		}
	})
}

// AssignValues replaces the contents with values.
func (b *BitVector[W]) AssignValues(values ...bool) error {
	n := len(values)
	return b.replace(n, n, ReasonExact, func(dst []W) {
		for i, v := range values {
			if v {
				bitset.Put(dst, i, true)
			}
		}
	})
}

// CopyFrom replaces the contents with a copy of src's bits.
func (b *BitVector[W]) CopyFrom(src *BitVector[W]) error {
	if src == b {
		return nil
	}
	return b.replace(src.size, src.size, ReasonExact, func(dst []W) {
		copy(dst, src.live())
	})
}

// Clone returns an independent bit vector with the same bits, capacity and
// options.
func (b *BitVector[W]) Clone() (*BitVector[W], error) {
	out := &BitVector[W]{opts: b.opts}
	if b.buf.Len() == 0 {
		return out, nil
	}
	err := out.replace(b.capBits, b.size, ReasonClone, func(dst []W) {
		copy(dst, b.live())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveFrom releases b's buffer and takes over src's buffer and bits.
// src is left empty with zero capacity.
func (b *BitVector[W]) MoveFrom(src *BitVector[W]) {
	if src == b {
		return
	}
	b.buf.Free()
	b.buf = src.buf.Take()
	b.size, b.capBits = src.size, src.capBits
	src.size, src.capBits = 0, 0
}

// Insert places v at pos, shifting later bits right. pos must be in [0, Size()].
func (b *BitVector[W]) Insert(pos int, v bool) error {
	return b.InsertValues(pos, v)
}

// InsertValues places values at pos, shifting later bits right.
func (b *BitVector[W]) InsertValues(pos int, values ...bool) error {
	if err := checkPosition(pos, b.size); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	n := b.size + len(values)
	return b.replace(n, n, ReasonExact, func(dst []W) {
		old := b.buf.Slots()
		bitset.Copy(dst, 0, old, 0, pos)
		for j, v := range values {
			if v {
				bitset.Put(dst, pos+j, true)
			}
		}
		bitset.Copy(dst, pos+len(values), old, pos, b.size-pos)
	})
}

// Erase removes bit pos, shifting later bits left.
func (b *BitVector[W]) Erase(pos int) error {
	if b.size == 0 {
		return ErrEmptyContainer
	}
	if err := checkIndex(pos, b.size); err != nil {
		return err
	}
	return b.eraseRange(pos, pos+1)
}

// EraseRange removes the bits in [first, last).
func (b *BitVector[W]) EraseRange(first, last int) error {
	if b.size == 0 {
		return ErrEmptyContainer
	}
	if err := checkRange(first, last, b.size); err != nil {
		return err
	}
	if first == last {
		return nil
	}
	return b.eraseRange(first, last)
}

func (b *BitVector[W]) eraseRange(first, last int) error {
	n := b.size - (last - first)
	return b.replace(n, n, ReasonExact, func(dst []W) {
		old := b.buf.Slots()
		bitset.Copy(dst, 0, old, 0, first)
		bitset.Copy(dst, first, old, last, b.size-last)
	})
}

// Swap exchanges the contents of b and other in O(1).
func (b *BitVector[W]) Swap(other *BitVector[W]) {
	b.buf, other.buf = other.buf, b.buf
	b.size, other.size = other.size, b.size
	b.capBits, other.capBits = other.capBits, b.capBits
}

// Resize sets the size to n bits. New bits are zero. Growing past the
// capacity reallocates with the growth margin; shrinking keeps the buffer.
func (b *BitVector[W]) Resize(n int) error {
	if err := checkCount(n); err != nil {
		return err
	}
	if err := b.growFor(n); err != nil {
		return err
	}
	if n < b.size {
		bitset.ClearTail(b.live(), n)
	}
	b.size = n
	return nil
}

// Reserve grows the capacity to exactly n bits if n exceeds it. It never
// shrinks. No reallocation happens when the allocated words already hold n bits.
func (b *BitVector[W]) Reserve(n int) error {
	if err := checkCount(n); err != nil {
		return err
	}
	if n <= b.capBits {
		return nil
	}
	if bitset.WordsFor[W](n) <= b.buf.Len() {
		b.capBits = n
		return nil
	}
	return b.realloc(n, ReasonReserve)
}

// ShrinkToFit sets Capacity() to Size(), releasing surplus words.
func (b *BitVector[W]) ShrinkToFit() error {
	if bitset.WordsFor[W](b.size) == b.buf.Len() {
		b.capBits = b.size
		return nil
	}
	return b.realloc(b.size, ReasonShrink)
}

// Clear removes all bits and keeps the capacity.
func (b *BitVector[W]) Clear() {
	clear(b.live())
	b.size = 0
}

// Reset zeroes the whole allocation. The size is unchanged.
func (b *BitVector[W]) Reset() {
	clear(b.buf.Slots())
}

// Release frees the buffer and returns its reservation to the memory budget.
func (b *BitVector[W]) Release() {
	b.buf.Free()
	b.size = 0
	b.capBits = 0
}

// Append appends the bits of other, applying the growth margin.
// Appending a bit vector to itself duplicates its bits.
func (b *BitVector[W]) Append(other *BitVector[W]) error {
	n := other.size
	if n == 0 {
		return nil
	}
	if err := b.growFor(b.size + n); err != nil {
		return err
	}
	bitset.Copy(b.buf.Slots(), b.size, other.buf.Slots(), 0, n)
	b.size += n
	return nil
}

// AndWith sets b to b & other. Words of other beyond its size count as zero.
func (b *BitVector[W]) AndWith(other *BitVector[W]) {
	bitset.And(b.live(), other.live())
}

// OrWith sets b to b | other, keeping b's size.
func (b *BitVector[W]) OrWith(other *BitVector[W]) {
	bitset.Or(b.live(), other.live())
	bitset.ClearTail(b.live(), b.size)
}

// XorWith sets b to b ^ other, keeping b's size.
func (b *BitVector[W]) XorWith(other *BitVector[W]) {
	bitset.Xor(b.live(), other.live())
	bitset.ClearTail(b.live(), b.size)
}

// Flip complements every bit.
func (b *BitVector[W]) Flip() {
	bitset.Not(b.live())
	bitset.ClearTail(b.live(), b.size)
}

func (b *BitVector[W]) checkShift(k int) error {
	if k < 0 || k >= bitset.Width[W]() {
		return fmt.Errorf("%w: shift by %d, supported range is [0, %d)", ErrInvalidArgument, k, bitset.Width[W]())
	}
	return nil
}

// ShiftLeft moves every bit j+k to j; the first k bits are dropped and the
// last k bits become zero. k must be in [0, BitsPerWord()).
func (b *BitVector[W]) ShiftLeft(k int) error {
	if err := b.checkShift(k); err != nil {
		return err
	}
	bitset.ShiftLeft(b.live(), k)
	return nil
}

// ShiftRight moves every bit j to j+k; the first k bits become zero and the
// last k bits are dropped. k must be in [0, BitsPerWord()).
func (b *BitVector[W]) ShiftRight(k int) error {
	if err := b.checkShift(k); err != nil {
		return err
	}
	bitset.ShiftRight(b.live(), k)
	bitset.ClearTail(b.live(), b.size)
	return nil
}

// And returns b & other as a new bit vector of b's size.
func (b *BitVector[W]) And(other *BitVector[W]) (*BitVector[W], error) {
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	out.AndWith(other)
	return out, nil
}

// Or returns b | other as a new bit vector of b's size.
func (b *BitVector[W]) Or(other *BitVector[W]) (*BitVector[W], error) {
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	out.OrWith(other)
	return out, nil
}

// Xor returns b ^ other as a new bit vector of b's size.
func (b *BitVector[W]) Xor(other *BitVector[W]) (*BitVector[W], error) {
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	out.XorWith(other)
	return out, nil
}

// Not returns the complement of b as a new bit vector.
func (b *BitVector[W]) Not() (*BitVector[W], error) {
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	out.Flip()
	return out, nil
}

// Shl returns b shifted left by k as a new bit vector.
func (b *BitVector[W]) Shl(k int) (*BitVector[W], error) {
	if err := b.checkShift(k); err != nil {
		return nil, err
	}
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	bitset.ShiftLeft(out.live(), k)
	return out, nil
}

// Shr returns b shifted right by k as a new bit vector.
func (b *BitVector[W]) Shr(k int) (*BitVector[W], error) {
	if err := b.checkShift(k); err != nil {
		return nil, err
	}
	out, err := b.Clone()
	if err != nil {
		return nil, err
	}
	bitset.ShiftRight(out.live(), k)
	bitset.ClearTail(out.live(), out.size)
	return out, nil
}

// Count returns the number of set bits.
func (b *BitVector[W]) Count() int {
	return bitset.Count(b.live())
}

// Any reports whether any bit is set.
func (b *BitVector[W]) Any() bool {
	return bitset.Any(b.live())
}

// None reports whether no bit is set.
func (b *BitVector[W]) None() bool {
	return !b.Any()
}

// NextSet returns the index of the first set bit at or after i, or -1.
func (b *BitVector[W]) NextSet(i int) int {
	return bitset.NextSet(b.live(), i)
}

// Equal reports whether b and other hold the same bits.
func (b *BitVector[W]) Equal(other *BitVector[W]) bool {
	if b.size != other.size {
		return false
	}
	x, y := b.live(), other.live()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// All returns an iterator over index/bit pairs.
func (b *BitVector[W]) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(i, b.BitAt(i)) {
				return
			}
		}
	}
}

// SetBits returns an iterator over the indices of set bits.
func (b *BitVector[W]) SetBits() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := b.NextSet(0); i >= 0; i = b.NextSet(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}

// ToString renders the bits as a dense '0'/'1' string in logical order.
func (b *BitVector[W]) ToString() string {
	out := make([]byte, b.size)
	for i := range out {
		if b.BitAt(i) {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// String renders the bits as "[ 1, 0, ..., 1 ]". An empty bit vector renders
// as "[  ]".
func (b *BitVector[W]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i := 0; i < b.size; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if b.BitAt(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString(" ]")
	return sb.String()
}
