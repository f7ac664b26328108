package seqbuf

import (
	"sync/atomic"
)

// ReallocReason tells why a container installed a new backing buffer.
type ReallocReason uint8

const (
	// ReasonGrow is growth with the doubling margin (Push, Append, Resize).
	ReasonGrow ReallocReason = iota
	// ReasonExact is a tight reallocation to the new size (Insert, Erase, Assign).
	ReasonExact
	// ReasonReserve is an explicit Reserve.
	ReasonReserve
	// ReasonShrink is ShrinkToFit.
	ReasonShrink
	// ReasonClone is the first buffer of a Clone. Nothing is replaced.
	ReasonClone
)

func (r ReallocReason) String() string {
	switch r {
	case ReasonGrow:
		return "grow"
	case ReasonExact:
		return "exact"
	case ReasonReserve:
		return "reserve"
	case ReasonShrink:
		return "shrink"
	case ReasonClone:
		return "clone"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting buffer metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors may be shared by containers living on different goroutines and
// must then be safe for concurrent use.
//
// Capacities are counted in storage slots: elements for a Vector, words for
// a BitVector.
type MetricsCollector interface {
	// RecordRealloc is called after a container installed a new buffer.
	RecordRealloc(reason ReallocReason, oldCap, newCap int)

	// RecordAllocFailure is called when a buffer request was rejected.
	RecordAllocFailure(reason ReallocReason, requested int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRealloc(ReallocReason, int, int)        {}
func (NoopMetricsCollector) RecordAllocFailure(ReallocReason, int, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReallocCount    atomic.Int64 // buffers replaced
	CloneCount      atomic.Int64 // buffers allocated for clones
	GrowCount       atomic.Int64
	ShrinkCount     atomic.Int64
	AllocFailures   atomic.Int64
	SlotsAllocated  atomic.Int64 // elements or words
	LargestCapacity atomic.Int64 // elements or words
}

// RecordRealloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRealloc(reason ReallocReason, _, newCap int) {
	switch reason {
	case ReasonClone:
		b.CloneCount.Add(1)
	case ReasonGrow:
		b.ReallocCount.Add(1)
		b.GrowCount.Add(1)
	case ReasonShrink:
		b.ReallocCount.Add(1)
		b.ShrinkCount.Add(1)
	default:
		b.ReallocCount.Add(1)
	}
	b.SlotsAllocated.Add(int64(newCap))
	for {
		cur := b.LargestCapacity.Load()
		if int64(newCap) <= cur || b.LargestCapacity.CompareAndSwap(cur, int64(newCap)) {
			break
		}
	}
}

// RecordAllocFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocFailure(ReallocReason, int, error) {
	b.AllocFailures.Add(1)
}

// GetStats returns a snapshot of the current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReallocCount:    b.ReallocCount.Load(),
		CloneCount:      b.CloneCount.Load(),
		GrowCount:       b.GrowCount.Load(),
		ShrinkCount:     b.ShrinkCount.Load(),
		AllocFailures:   b.AllocFailures.Load(),
		SlotsAllocated:  b.SlotsAllocated.Load(),
		LargestCapacity: b.LargestCapacity.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	ReallocCount    int64
	CloneCount      int64
	GrowCount       int64
	ShrinkCount     int64
	AllocFailures   int64
	SlotsAllocated  int64
	LargestCapacity int64
}
