// Package resource implements a memory budget shared by container buffers.
//
// Every backing buffer a container allocates is reserved against the
// Controller before it is installed and released when it is replaced or
// the container is released. A hard limit turns budget exhaustion into an
// allocation failure instead of unbounded growth:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 20, // 1MB limit
//	})
//
//	v := seqbuf.New[int64](seqbuf.WithMemoryController(rc))
//	if err := v.Reserve(1 << 20); err != nil {
//	    // errors.Is(err, seqbuf.ErrAllocationFailure)
//	    // errors.Is(err, resource.ErrMemoryLimitExceeded)
//	}
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use, so one Controller can
// budget containers owned by different goroutines. The containers themselves
// are not synchronized.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional budgeting without nil checks everywhere.
package resource
