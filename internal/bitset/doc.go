// Package bitset provides word-level kernels for MSB-first packed bit arrays.
//
// Layout:
//   - Logical bit i lives in word i / width
//   - Inside the word it occupies position (width-1) - (i % width),
//     so the first logical bit of a word is its most significant bit
//   - Word types: uint8, uint16, uint32, uint64 (see Word)
//
// Used by the packed boolean container for:
//   - Single bit reads and writes (Get, Put, Mask)
//   - Shifts with carry across word boundaries (ShiftLeft, ShiftRight)
//   - Word-wise algebra and population counts (And, Or, Xor, Not, Count)
//
// The kernels are not synchronized; callers own the slices they pass in.
package bitset
