package seqbuf

import (
	"log/slog"

	"github.com/hupe1980/seqbuf/resource"
)

type options struct {
	budget           *resource.Controller
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a container at construction time.
type Option func(*options)

// WithMemoryController charges every backing buffer of the container to rc.
// When rc has a hard limit, growth beyond it fails with ErrAllocationFailure
// and leaves the container unchanged.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	v := seqbuf.New[float64](seqbuf.WithMemoryController(rc))
func WithMemoryController(rc *resource.Controller) Option {
	return func(o *options) {
		o.budget = rc
	}
}

// WithLogger configures structured logging of buffer reallocations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := seqbuf.NewJSONLogger(slog.LevelDebug)
//	v := seqbuf.New[int](seqbuf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for reallocations.
//
// Example:
//
//	metrics := &seqbuf.BasicMetricsCollector{}
//	v := seqbuf.New[int](seqbuf.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           discardLogger,
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

var discardLogger = NoopLogger()

func (o *options) log() *Logger {
	if o.logger == nil {
		return discardLogger
	}
	return o.logger
}

func (o *options) metrics() MetricsCollector {
	if o.metricsCollector == nil {
		return NoopMetricsCollector{}
	}
	return o.metricsCollector
}

func (o *options) reallocated(reason ReallocReason, oldCap, newCap int, bytes int64) {
	o.log().LogRealloc(reason, oldCap, newCap, bytes)
	o.metrics().RecordRealloc(reason, oldCap, newCap)
}

func (o *options) allocFailed(reason ReallocReason, requested int, err error) error {
	o.log().LogAllocFailure(reason, requested, err)
	o.metrics().RecordAllocFailure(reason, requested, err)
	return allocError(err)
}

// doubled applies the growth margin: 2*n, clamped to limit.
// Requests above limit are passed through so the allocator rejects them.
func doubled(n, limit int) int {
	if n >= limit {
		return n
	}
	if n > limit/2 {
		return limit
	}
	return 2 * n
}
