package backtest

import (
	"github.com/yourusername/signal-bench/internal/models"
)

// VectorizedBackend derives entry/exit points from the signal sequence and
// computes the portfolio path in closed form: equity evolves by a per-bar
// multiplicative factor (the close-to-close growth while holding, scaled by
// the cost factors at the entry and exit bars) instead of simulating cash
// and position state bar by bar.
type VectorizedBackend struct{}

// NewVectorizedBackend creates the vectorized portfolio backend
func NewVectorizedBackend() *VectorizedBackend {
	return &VectorizedBackend{}
}

// Name returns the backend name
func (b *VectorizedBackend) Name() string {
	return BackendVectorized
}

// Run computes the portfolio performance from signal transitions
func (b *VectorizedBackend) Run(req models.BacktestRequest) (*models.BacktestResult, error) {
	if len(req.Prices) < 2 {
		return nil, models.ErrInsufficientData
	}
	if err := req.Signals.AlignedWith(req.Prices); err != nil {
		return nil, err
	}

	closes := req.Prices.Closes()
	n := len(closes)
	rate := req.Cost.TotalRate()
	entryFactor := 1.0
	exitFactor := 1 - rate
	degenerate := rate >= 1
	if !degenerate {
		entryFactor = 1 / (1 + rate)
	}

	curve := make(EquityCurve, n)
	curve[0] = req.InitialCapital
	trades := []models.Trade{}

	holding := false
	value := req.InitialCapital
	entryIndex := 0
	entryNotional := 0.0

	for i := 1; i < n; i++ {
		if holding && closes[i-1] != 0 {
			value *= closes[i] / closes[i-1]
		}
		switch {
		case req.Signals[i] == models.SignalBuy && !holding && !degenerate:
			entryNotional = value
			value *= entryFactor
			entryIndex = i
			holding = true
		case req.Signals[i] == models.SignalSell && holding:
			value *= exitFactor
			trades = append(trades, vectorizedTrade(entryIndex, i, closes, entryNotional, value, rate))
			holding = false
		}
		curve[i] = value
	}

	if holding {
		last := n - 1
		value *= exitFactor
		trades = append(trades, vectorizedTrade(entryIndex, last, closes, entryNotional, value, rate))
		holding = false
	}

	metrics := CalculateMetricsAnnualized(curve, trades, annualization(req))
	if metrics.Error != "" {
		return nil, models.ErrInsufficientData
	}

	result := resultFromMetrics(req.Name, b.Name(), metrics)
	result.FinalValue = value
	result.TotalReturn = (value - req.InitialCapital) / req.InitialCapital
	result.EquityCurve = curve
	return result, nil
}

func vectorizedTrade(entryIndex, exitIndex int, closes []float64, entryNotional, exitNotional, rate float64) models.Trade {
	size := 0.0
	if denom := closes[entryIndex] * (1 + rate); denom > 0 {
		size = entryNotional / denom
	}
	return models.Trade{
		EntryIndex: entryIndex,
		ExitIndex:  exitIndex,
		EntryPrice: closes[entryIndex],
		ExitPrice:  closes[exitIndex],
		Size:       size,
		Profit:     exitNotional - entryNotional,
	}
}
