package lemmago

import (
	"log/slog"
	"runtime"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	batchConcurrency int
}

// Option configures a Lemmer.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lemmago.BasicMetricsCollector{}
//	lm := lemmago.New(lemmago.WithMetricsCollector(metrics))
//	// ... use lm ...
//	stats := metrics.Stats()
//	fmt.Printf("Words: %d, Avg latency: %dns\n", stats.AnalyzeCount, stats.AnalyzeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lemmago.NewJSONLogger(slog.LevelInfo)
//	lm := lemmago.New(lemmago.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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

// WithBatchConcurrency limits the goroutines AnalyzeBatch uses.
// Values below one select GOMAXPROCS.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		o.batchConcurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.batchConcurrency < 1 {
		o.batchConcurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
