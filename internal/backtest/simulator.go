package backtest

import (
	"github.com/yourusername/signal-bench/internal/models"
)

// SimulationResult represents the raw output of a single trade simulation
type SimulationResult struct {
	EquityCurve EquityCurve
	Trades      []models.Trade
	FinalValue  float64
}

// Simulate executes a deterministic long-only simulation of the signal
// sequence over the price series.
//
// State starts flat with cash equal to initialCapital. A BUY signal while
// flat converts all cash into a position sized at the bar close plus entry
// costs; a SELL signal while holding realizes the position at the bar close
// minus exit costs. Index 0 is the baseline equity point. Any position still
// open after the last bar is force-closed at the final close using the same
// cost model, so the final value never carries an unrealized position.
func Simulate(prices models.PriceSeries, signals models.SignalSeries, initialCapital float64, cost models.CostModel) (*SimulationResult, error) {
	if len(prices) < 2 {
		return nil, models.ErrInsufficientData
	}
	if err := signals.AlignedWith(prices); err != nil {
		return nil, err
	}

	cash := initialCapital
	var position *models.Position
	curve := make(EquityCurve, 1, len(prices))
	curve[0] = initialCapital
	trades := []models.Trade{}

	for i := 1; i < len(prices); i++ {
		close := prices[i].Close

		switch {
		case signals[i] == models.SignalBuy && position == nil:
			size := 0.0
			// A degenerate cost model (commission+slippage >= 1) drives the
			// effective size to zero: no trade taken.
			if denom := close * (1 + cost.TotalRate()); denom > 0 && cost.TotalRate() < 1 {
				size = cash / denom
			}
			if size > 0 {
				position = &models.Position{EntryPrice: close, Size: size, EntryIndex: i}
				cash = 0
			}

		case signals[i] == models.SignalSell && position != nil:
			proceeds := position.Size * close * (1 - cost.TotalRate())
			trades = append(trades, closePosition(*position, close, i, proceeds, cost))
			cash = proceeds
			position = nil
		}

		equity := cash
		if position != nil {
			equity += position.Size * close
		}
		curve = append(curve, equity)
	}

	if position != nil {
		last := len(prices) - 1
		lastClose := prices[last].Close
		proceeds := position.Size * lastClose * (1 - cost.TotalRate())
		trades = append(trades, closePosition(*position, lastClose, last, proceeds, cost))
		cash = proceeds
	}

	return &SimulationResult{
		EquityCurve: curve,
		Trades:      trades,
		FinalValue:  cash,
	}, nil
}

func closePosition(pos models.Position, exitPrice float64, exitIndex int, proceeds float64, cost models.CostModel) models.Trade {
	entryNotional := pos.Size * pos.EntryPrice * (1 + cost.TotalRate())
	return models.Trade{
		EntryIndex: pos.EntryIndex,
		ExitIndex:  exitIndex,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		Size:       pos.Size,
		Profit:     proceeds - entryNotional,
	}
}
