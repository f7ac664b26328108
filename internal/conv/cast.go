package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int safely.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// UintToInt converts uint to int safely.
func UintToInt(v uint) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// CeilDiv returns ceil(n / d) for n >= 0 and d > 0.
func CeilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return 1 + (n-1)/d
}

// ByteSize returns n*elemSize as int64, failing when the product
// does not fit.
func ByteSize(n int, elemSize uintptr) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("integer overflow: %d elements (negative)", n)
	}
	if elemSize == 0 || n == 0 {
		return 0, nil
	}
	if uint64(n) > math.MaxInt64/uint64(elemSize) {
		return 0, fmt.Errorf("integer overflow: %d elements of %d bytes", n, elemSize)
	}
	return int64(n) * int64(elemSize), nil
}
