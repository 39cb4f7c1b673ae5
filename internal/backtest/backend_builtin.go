package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/signal-bench/internal/models"
)

// BuiltinBackend runs the built-in trade simulator and metrics calculator.
// It is the default variant and is always available.
type BuiltinBackend struct{}

// NewBuiltinBackend creates the built-in simulator backend
func NewBuiltinBackend() *BuiltinBackend {
	return &BuiltinBackend{}
}

// Name returns the backend name
func (b *BuiltinBackend) Name() string {
	return BackendBuiltin
}

// Run simulates the request and derives the statistics set
func (b *BuiltinBackend) Run(req models.BacktestRequest) (*models.BacktestResult, error) {
	sim, err := Simulate(req.Prices, req.Signals, req.InitialCapital, req.Cost)
	if err != nil {
		return nil, err
	}

	metrics := CalculateMetricsAnnualized(sim.EquityCurve, sim.Trades, annualization(req))
	if metrics.Error != "" {
		return nil, models.ErrInsufficientData
	}

	result := resultFromMetrics(req.Name, b.Name(), metrics)
	// Total return is derived from the force-closed final value so an
	// open position at series end never leaves it unrealized.
	result.FinalValue = sim.FinalValue
	result.TotalReturn = (sim.FinalValue - req.InitialCapital) / req.InitialCapital
	result.EquityCurve = sim.EquityCurve
	return result, nil
}

func resultFromMetrics(name, backend string, metrics Metrics) *models.BacktestResult {
	return &models.BacktestResult{
		ID:           uuid.New(),
		StrategyName: name,
		Backend:      backend,
		TotalReturn:  metrics.TotalReturn,
		AnnualReturn: metrics.AnnualReturn,
		Volatility:   metrics.Volatility,
		SharpeRatio:  metrics.SharpeRatio,
		SortinoRatio: metrics.SortinoRatio,
		MaxDrawdown:  metrics.MaxDrawdown,
		CalmarRatio:  metrics.CalmarRatio,
		WinRate:      metrics.WinRate,
		ProfitFactor: metrics.ProfitFactor,
		AvgWin:       metrics.AvgWin,
		AvgLoss:      metrics.AvgLoss,
		TotalTrades:  metrics.TotalTrades,
		Status:       models.StatusCompleted,
		CreatedAt:    time.Now().UTC(),
	}
}
