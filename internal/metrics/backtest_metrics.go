// Package metrics defines backtest-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signal_bench",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by backend and status",
	}, []string{"backend", "status"})
)

// Backtest histogram vectors
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_bench",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of single backtest evaluations in seconds",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_bench",
		Name:      "batch_size",
		Help:      "Number of requests per batch run",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
	})
)

// Backtest gauge vectors
var (
	BatchAvgDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_bench",
		Name:      "batch_avg_duration_seconds",
		Help:      "Average per-task duration of the most recent batch",
	})
)

// RecordBacktestRun records a single backtest run outcome.
// backend should be one of: "order_driven", "vectorized", "builtin"
// status should be one of: "completed", "failed", "timeout"
func RecordBacktestRun(backend, status string) {
	BacktestRunsTotal.WithLabelValues(backend, status).Inc()
}

// ObserveBacktestDuration records the duration of a single evaluation.
func ObserveBacktestDuration(seconds float64) {
	BacktestDuration.Observe(seconds)
}

// RecordBatch records the size and average task duration of a batch run.
func RecordBatch(size int, avgDurationSeconds float64) {
	BatchSize.Observe(float64(size))
	BatchAvgDuration.Set(avgDurationSeconds)
}
