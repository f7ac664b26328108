package bitset

import (
	"math/bits"
	"unsafe"

	"github.com/hupe1980/seqbuf/internal/conv"
)

// Word is the set of storage word types.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the number of bits in W.
func Width[W Word]() int {
	var w W
	return int(unsafe.Sizeof(w)) * 8
}

// WordsFor returns ceil(n / Width[W]()), the number of words backing n bits.
func WordsFor[W Word](n int) int {
	return conv.CeilDiv(n, Width[W]())
}

// Mask returns the in-word mask of logical bit i.
// Bits are MSB-first: bit i sits at position (width-1) - (i % width).
func Mask[W Word](i int) W {
	width := Width[W]()
	return W(1) << uint(width-1-i%width)
}

// Get reports whether logical bit i is set.
func Get[W Word](words []W, i int) bool {
	return words[i/Width[W]()]&Mask[W](i) != 0
}

// Put sets logical bit i to v.
func Put[W Word](words []W, i int, v bool) {
	idx := i / Width[W]()
	if v {
		words[idx] |= Mask[W](i)
	} else {
		words[idx] &^= Mask[W](i)
	}
}

// ShiftLeft moves every logical bit j+k to j. The first k bits are dropped
// and k zero bits enter at the end. Requires 0 <= k < width.
//
// Walking from the last word to the first, each word is shifted left by k
// and receives the top k bits of its successor as carry in its low bits.
func ShiftLeft[W Word](words []W, k int) {
	if k == 0 {
		return
	}
	back := uint(Width[W]() - k)
	var carry W
	for i := len(words) - 1; i >= 0; i-- {
		out := words[i] >> back
		words[i] = words[i]<<uint(k) | carry
		carry = out
	}
}

// ShiftRight moves every logical bit j to j+k. The first k bits become zero
// and the last k bits of the slice are dropped. Requires 0 <= k < width.
//
// Walking from the first word to the last, each word is shifted right by k
// and receives the low k bits of its predecessor as carry in its top bits.
func ShiftRight[W Word](words []W, k int) {
	if k == 0 {
		return
	}
	back := uint(Width[W]() - k)
	var carry W
	for i := range words {
		out := words[i] << back
		words[i] = words[i]>>uint(k) | carry
		carry = out
	}
}

// And computes dst &= src word by word; words missing from src count as zero.
func And[W Word](dst, src []W) {
	for i := range dst {
		if i < len(src) {
			dst[i] &= src[i]
		} else {
			dst[i] = 0
		}
	}
}

// Or computes dst |= src word by word; words missing from src count as zero.
func Or[W Word](dst, src []W) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] |= src[i]
	}
}

// Xor computes dst ^= src word by word; words missing from src count as zero.
func Xor[W Word](dst, src []W) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] ^= src[i]
	}
}

// Not complements every word.
func Not[W Word](words []W) {
	for i := range words {
		words[i] = ^words[i]
	}
}

// Count returns the number of set bits.
func Count[W Word](words []W) int {
	count := 0
	for _, w := range words {
		if w != 0 {
			count += bits.OnesCount64(uint64(w))
		}
	}
	return count
}

// Any reports whether any bit is set, stopping at the first non-zero word.
func Any[W Word](words []W) bool {
	for _, w := range words {
		if w != 0 {
			return true
		}
	}
	return false
}

// NextSet returns the first set logical bit at or after i, or -1.
func NextSet[W Word](words []W, i int) int {
	width := Width[W]()
	if i < 0 {
		i = 0
	}
	wordIdx := i / width
	if wordIdx >= len(words) {
		return -1
	}

	// Drop the bits before i in the first word.
	w := words[wordIdx] & (^W(0) >> uint(i%width))
	for {
		if w != 0 {
			lead := bits.LeadingZeros64(uint64(w)) - (64 - width)
			return wordIdx*width + lead
		}
		wordIdx++
		if wordIdx >= len(words) {
			return -1
		}
		w = words[wordIdx]
	}
}

// ClearTail zeroes every bit at logical position n or later.
// It is a no-op when n lies beyond the last word.
func ClearTail[W Word](words []W, n int) {
	width := Width[W]()
	used := WordsFor[W](n)
	if used > len(words) {
		return
	}
	if r := n % width; r != 0 && used > 0 {
		words[used-1] &= ^W(0) << uint(width-r)
	}
	clear(words[used:])
}

// Copy copies n logical bits from src starting at srcOff to dst starting at
// dstOff. Overlapping ranges inside one slice are not supported.
func Copy[W Word](dst []W, dstOff int, src []W, srcOff int, n int) {
	if n <= 0 {
		return
	}
	width := Width[W]()

	// Word-aligned fast path.
	if dstOff%width == 0 && srcOff%width == 0 {
		full := n / width
		copy(dst[dstOff/width:dstOff/width+full], src[srcOff/width:srcOff/width+full])
		done := full * width
		dstOff += done
		srcOff += done
		n -= done
	}

	for j := 0; j < n; j++ {
		Put(dst, dstOff+j, Get(src, srcOff+j))
	}
}
