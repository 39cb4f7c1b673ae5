package backtest

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/signal-bench/internal/metrics"
	"github.com/yourusername/signal-bench/internal/models"
)

// Dispatcher selects exactly one backend per request, executes it, and
// normalizes its output to the BacktestResult schema. Selection happens once,
// before execution, over the static capability registry; a failing backend
// surfaces as status=failed, never as a mid-call fallback to a
// lower-preference backend.
type Dispatcher struct {
	caps     Capabilities
	backends map[string]Backend
	cache    *ResultCache
	logger   *logrus.Logger
}

// NewDispatcher creates a dispatcher over the capability registry.
// cache may be nil to disable result caching.
func NewDispatcher(caps Capabilities, resultCache *ResultCache, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Dispatcher{
		caps: caps,
		backends: map[string]Backend{
			BackendOrderDriven: NewOrderDrivenBackend(),
			BackendVectorized:  NewVectorizedBackend(),
			BackendBuiltin:     NewBuiltinBackend(),
		},
		cache:  resultCache,
		logger: logger,
	}
}

// SelectedBackend returns the backend name the dispatcher will use
func (d *Dispatcher) SelectedBackend() string {
	return d.caps.Select()
}

// RunBacktest evaluates a single request synchronously. It always returns a
// result: invalid inputs and backend failures terminate in a tagged
// status=failed result, never in an error or panic crossing this boundary.
func (d *Dispatcher) RunBacktest(req models.BacktestRequest) *models.BacktestResult {
	start := time.Now()

	if err := req.Validate(); err != nil {
		metrics.RecordBacktestRun(d.caps.Select(), models.StatusFailed)
		return models.NewFailedResult(req.Name, "", err)
	}

	backend := d.backends[d.caps.Select()]

	if d.cache != nil {
		if hit, found := d.cache.Get(req); found {
			d.logger.WithFields(logrus.Fields{
				"strategy": req.Name,
				"backend":  hit.Backend,
			}).Debug("Returning cached backtest result")
			return hit
		}
	}

	result := d.execute(backend, req)
	normalizeResult(result)

	duration := time.Since(start)
	metrics.RecordBacktestRun(backend.Name(), result.Status)
	metrics.ObserveBacktestDuration(duration.Seconds())

	if d.cache != nil {
		d.cache.Set(req, result)
	}

	d.logger.WithFields(logrus.Fields{
		"strategy":     req.Name,
		"backend":      backend.Name(),
		"status":       result.Status,
		"total_return": result.TotalReturn,
		"duration":     duration,
	}).Info("Backtest finished")

	return result
}

// execute runs the selected backend, converting errors and panics into a
// failed result carrying the original message
func (d *Dispatcher) execute(backend Backend, req models.BacktestRequest) (result *models.BacktestResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"strategy": req.Name,
				"backend":  backend.Name(),
			}).Errorf("Backend panicked: %v", r)
			result = models.NewFailedResult(req.Name, backend.Name(), fmt.Errorf("backend panic: %v", r))
		}
	}()

	res, err := backend.Run(req)
	if err != nil {
		return models.NewFailedResult(req.Name, backend.Name(), err)
	}
	return res
}

// normalizeResult coerces backend output to the shared result conventions:
// drawdown is a negative fraction in [-1, 0], win rate is in [0, 1], and
// every statistic is finite
func normalizeResult(result *models.BacktestResult) {
	if result == nil || result.Status != models.StatusCompleted {
		return
	}

	if result.MaxDrawdown > 0 {
		result.MaxDrawdown = -result.MaxDrawdown
	}
	if result.MaxDrawdown < -1 {
		result.MaxDrawdown = -1
	}
	if result.WinRate < 0 {
		result.WinRate = 0
	} else if result.WinRate > 1 {
		result.WinRate = 1
	}

	result.TotalReturn = sanitize(result.TotalReturn)
	result.AnnualReturn = sanitize(result.AnnualReturn)
	result.Volatility = sanitize(result.Volatility)
	result.SharpeRatio = sanitize(result.SharpeRatio)
	result.SortinoRatio = sanitize(result.SortinoRatio)
	result.MaxDrawdown = sanitize(result.MaxDrawdown)
	result.CalmarRatio = sanitize(result.CalmarRatio)
	result.WinRate = sanitize(result.WinRate)
	result.ProfitFactor = sanitize(result.ProfitFactor)
	result.AvgWin = sanitize(result.AvgWin)
	result.AvgLoss = sanitize(result.AvgLoss)
	result.FinalValue = sanitize(result.FinalValue)
}
