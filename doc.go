// Package seqbuf provides growable sequence containers with an explicit,
// exclusively owned backing buffer and a documented growth policy.
//
// Two containers share the policy but not their storage:
//
//   - Vector[T] stores one element per slot.
//   - BitVector[W] packs one boolean per bit into words of type W
//     (uint8, uint16, uint32 or uint64). Bits is BitVector[uint8].
//
// # Quick Start
//
//	v := seqbuf.New[int]()
//	_ = v.Push(10)
//	_ = v.Insert(0, 5)
//	fmt.Println(v) // [ 5, 10 ]
//
//	b := seqbuf.BitsOf(true, false, true)
//	_ = b.ShiftLeft(1)
//	fmt.Println(b.ToString()) // 010
//
// # Growth Policy
//
// Appending operations (Push, EmplaceBack, Append, growing Resize) reallocate
// to twice the new size when the buffer is full. Positional edits (Insert,
// Erase and their range forms) and whole-content replacement (Assign,
// CopyFrom, FromSlice) allocate exactly the new size. Reserve only grows and
// ShrinkToFit trims the capacity to the size.
//
// BitVector counts its capacity in bits. Growth to n bits reserves
// 2*ceil(n/BitsPerWord) words.
//
// Every replacement allocates the new buffer first. If that fails the
// container is left exactly as it was.
//
// # Bit Layout
//
// Bits are packed most significant first: logical bit i lives in word
// i/BitsPerWord at bit position (BitsPerWord-1) - i%BitsPerWord. Bits past
// Size are always zero, so Count, Equal and the word-level algebra never see
// stale data.
//
// # Memory Budget
//
// A resource.Controller can be shared by any number of containers to cap the
// bytes held by their buffers:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	v := seqbuf.New[float64](seqbuf.WithMemoryController(rc))
//	defer v.Release()
//
// Growth past the limit fails with ErrAllocationFailure, wrapping
// resource.ErrMemoryLimitExceeded.
//
// # Errors
//
// Operations report failures as sentinel errors matched with errors.Is:
// ErrEmptyContainer, ErrIndexOutOfBounds (carried by *IndexError),
// ErrAllocationFailure and ErrInvalidArgument.
//
// # Observability
//
// WithLogger installs a slog-based Logger that records every reallocation at
// debug level and every rejected allocation at warn level.
// WithMetricsCollector installs a MetricsCollector; BasicMetricsCollector
// keeps simple atomic counters.
//
// # Interoperability
//
// BitVector converts to and from *roaring.Bitmap (ToRoaring,
// BitVectorFromRoaring) and *bitset.BitSet (ToBitSet, BitVectorFromBitSet).
//
// Containers are not safe for concurrent use.
package seqbuf
