package backtest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/signal-bench/internal/metrics"
	"github.com/yourusername/signal-bench/internal/models"
)

// Runner defaults
const (
	DefaultWorkerCount = 4
	DefaultTaskTimeout = 30 * time.Second
)

// Runner executes batches of independent backtest requests concurrently over
// a fixed-size worker pool with a per-task timeout. Results come back in
// submission order regardless of completion order, one per request, each
// tagged completed, failed or timeout — no failure ever propagates to the
// caller as an error or panic.
type Runner struct {
	dispatcher  *Dispatcher
	workerCount int
	timeout     time.Duration
	logger      *logrus.Logger
	stats       models.BatchRunStats
}

type batchJob struct {
	index int
	req   models.BacktestRequest
}

type batchResult struct {
	index  int
	result *models.BacktestResult
}

// NewRunner creates a batch runner bound to a dispatcher
func NewRunner(dispatcher *Dispatcher, workerCount int, timeout time.Duration, logger *logrus.Logger) *Runner {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Runner{
		dispatcher:  dispatcher,
		workerCount: workerCount,
		timeout:     timeout,
		logger:      logger,
	}
}

// RunBatch executes all requests concurrently, bounded by the worker count,
// and returns one result per request in submission order. Out-of-order
// completions are reassembled by the index carried with each job. Lifetime
// stats are updated only after the whole batch resolves.
func (r *Runner) RunBatch(ctx context.Context, requests []models.BacktestRequest) []*models.BacktestResult {
	n := len(requests)
	if n == 0 {
		return []*models.BacktestResult{}
	}

	start := time.Now()
	batchID := uuid.New()
	r.logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"requests": n,
		"workers":  r.workerCount,
		"timeout":  r.timeout,
	}).Info("Starting backtest batch")

	jobs := make(chan batchJob)
	out := make(chan batchResult, n)

	workers := r.workerCount
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go r.worker(ctx, jobs, out, &wg)
	}

	go func() {
		defer close(jobs)
		for i, req := range requests {
			jobs <- batchJob{index: i, req: req}
		}
	}()

	results := make([]*models.BacktestResult, n)
	for i := 0; i < n; i++ {
		br := <-out
		results[br.index] = br.result
	}
	wg.Wait()

	duration := time.Since(start)
	r.updateStats(results, duration)

	r.logger.WithFields(logrus.Fields{
		"batch_id":   batchID,
		"requests":   n,
		"successful": countStatus(results, models.StatusCompleted),
		"failed":     countStatus(results, models.StatusFailed),
		"timeouts":   countStatus(results, models.StatusTimeout),
		"duration":   duration,
	}).Info("Backtest batch finished")

	return results
}

// Stats returns a copy of the lifetime run statistics
func (r *Runner) Stats() models.BatchRunStats {
	return r.stats
}

func (r *Runner) worker(ctx context.Context, jobs <-chan batchJob, out chan<- batchResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		out <- batchResult{index: job.index, result: r.runWithDeadline(ctx, job.req)}
	}
}

// runWithDeadline awaits a single evaluation up to the per-task timeout.
// A timeout abandons the computation goroutine rather than killing it; the
// slot is recorded as status=timeout and never retried.
func (r *Runner) runWithDeadline(ctx context.Context, req models.BacktestRequest) *models.BacktestResult {
	done := make(chan *models.BacktestResult, 1)
	go func() {
		done <- r.dispatcher.RunBacktest(req)
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case result := <-done:
		return result
	case <-timer.C:
		r.logger.WithFields(logrus.Fields{
			"strategy": req.Name,
			"timeout":  r.timeout,
		}).Warn("Backtest task timed out")
		metrics.RecordBacktestRun(r.dispatcher.SelectedBackend(), models.StatusTimeout)
		return models.NewTimeoutResult(req.Name)
	case <-ctx.Done():
		return models.NewFailedResult(req.Name, "", ctx.Err())
	}
}

// updateStats runs on the orchestrating goroutine only, after every task in
// the batch has resolved, so no synchronization is needed
func (r *Runner) updateStats(results []*models.BacktestResult, duration time.Duration) {
	n := len(results)
	r.stats.TotalBacktests += n
	r.stats.Successful += countStatus(results, models.StatusCompleted)
	r.stats.Failed += countStatus(results, models.StatusFailed)
	r.stats.Timeouts += countStatus(results, models.StatusTimeout)
	r.stats.AvgDurationSeconds = duration.Seconds() / float64(n)

	metrics.RecordBatch(n, r.stats.AvgDurationSeconds)
}

func countStatus(results []*models.BacktestResult, status string) int {
	count := 0
	for _, result := range results {
		if result != nil && result.Status == status {
			count++
		}
	}
	return count
}
