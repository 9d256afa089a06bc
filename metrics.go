package lemmago

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/lemmago/lang"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    analyzeHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordAnalyze(l lang.Language, d time.Duration, lemmas int) {
//	    p.analyzeHistogram.WithLabelValues(l.String()).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordAnalyze is called once per language a word was analyzed in.
	// lemmas is the number of candidates returned for that language.
	RecordAnalyze(language lang.Language, duration time.Duration, lemmas int)

	// RecordBatch is called after each batch analysis. failed counts the
	// words left unanalyzed because the context was canceled.
	RecordBatch(words, failed int, duration time.Duration)

	// RecordLoad is called after each dictionary load, err is nil if
	// successful.
	RecordLoad(name string, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAnalyze(lang.Language, time.Duration, int) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)             {}
func (NoopMetricsCollector) RecordLoad(string, int64, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AnalyzeCount      atomic.Int64
	AnalyzeEmpty      atomic.Int64
	AnalyzeLemmas     atomic.Int64
	AnalyzeTotalNanos atomic.Int64
	BatchCount        atomic.Int64
	BatchWords        atomic.Int64
	BatchFailed       atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadBytes         atomic.Int64
	LoadTotalNanos    atomic.Int64
}

// RecordAnalyze implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAnalyze(_ lang.Language, duration time.Duration, lemmas int) {
	b.AnalyzeCount.Add(1)
	b.AnalyzeLemmas.Add(int64(lemmas))
	b.AnalyzeTotalNanos.Add(duration.Nanoseconds())
	if lemmas == 0 {
		b.AnalyzeEmpty.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(words, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchWords.Add(int64(words))
	b.BatchFailed.Add(int64(failed))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(bytes)
}

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		AnalyzeCount:    b.AnalyzeCount.Load(),
		AnalyzeEmpty:    b.AnalyzeEmpty.Load(),
		AnalyzeLemmas:   b.AnalyzeLemmas.Load(),
		AnalyzeAvgNanos: avg(b.AnalyzeTotalNanos.Load(), b.AnalyzeCount.Load()),
		BatchCount:      b.BatchCount.Load(),
		BatchWords:      b.BatchWords.Load(),
		BatchFailed:     b.BatchFailed.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
		LoadAvgNanos:    avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AnalyzeCount    int64
	AnalyzeEmpty    int64
	AnalyzeLemmas   int64
	AnalyzeAvgNanos int64
	BatchCount      int64
	BatchWords      int64
	BatchFailed     int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
	LoadAvgNanos    int64
}
