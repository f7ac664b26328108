package seqbuf

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	packed "github.com/hupe1980/seqbuf/internal/bitset"
	"github.com/hupe1980/seqbuf/internal/conv"
)

// ToRoaring returns a roaring bitmap holding the indices of the set bits.
// Bit vectors with set bits beyond the uint32 range cannot be converted.
func (b *BitVector[W]) ToRoaring() (*roaring.Bitmap, error) {
	bm := roaring.New()
	for i := range b.SetBits() {
		x, err := conv.IntToUint32(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		bm.Add(x)
	}
	return bm, nil
}

// BitVectorFromRoaring returns a bit vector of size bits with the bits listed
// in bm set. Every member of bm must be below size.
func BitVectorFromRoaring[W Word](bm *roaring.Bitmap, size int, opts ...Option) (*BitVector[W], error) {
	if err := checkCount(size); err != nil {
		return nil, err
	}
	if !bm.IsEmpty() {
		maxIdx, err := conv.Uint32ToInt(bm.Maximum())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		if maxIdx >= size {
			return nil, &IndexError{Index: maxIdx, Size: size}
		}
	}

	b := NewBitVector[W](opts...)
	err := b.replace(size, size, ReasonExact, func(dst []W) {
		it := bm.Iterator()
		for it.HasNext() {
			packed.Put(dst, int(it.Next()), true)
		}
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ToBitSet returns a bitset of length Size() with the same bits set.
func (b *BitVector[W]) ToBitSet() *bitset.BitSet {
	bs := bitset.New(uint(b.size))
	for i := range b.SetBits() {
		bs.Set(uint(i))
	}
	return bs
}

// BitVectorFromBitSet returns a bit vector of bs.Len() bits with the same
// bits set.
func BitVectorFromBitSet[W Word](bs *bitset.BitSet, opts ...Option) (*BitVector[W], error) {
	size, err := conv.UintToInt(bs.Len())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	b := NewBitVector[W](opts...)
	err = b.replace(size, size, ReasonExact, func(dst []W) {
		for i, ok := bs.NextSet(0); ok && i < bs.Len(); i, ok = bs.NextSet(i + 1) {
			packed.Put(dst, int(i), true)
		}
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
