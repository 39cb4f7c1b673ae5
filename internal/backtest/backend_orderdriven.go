package backtest

import (
	"github.com/yourusername/signal-bench/internal/models"
)

// OrderDrivenBackend is the high-fidelity backend: a bar-by-bar, order-driven
// engine. Signals queue orders that the broker fills at the next bar's open,
// with slippage applied to the fill price and commission charged on the
// notional. Statistics come from its own analyzers over the marked-to-close
// equity path.
type OrderDrivenBackend struct{}

type orderSide int

const (
	orderBuy orderSide = iota
	orderSell
)

type pendingOrder struct {
	side orderSide
}

// NewOrderDrivenBackend creates the order-driven engine backend
func NewOrderDrivenBackend() *OrderDrivenBackend {
	return &OrderDrivenBackend{}
}

// Name returns the backend name
func (b *OrderDrivenBackend) Name() string {
	return BackendOrderDriven
}

// Run replays the series bar by bar, filling queued orders at the next open
func (b *OrderDrivenBackend) Run(req models.BacktestRequest) (*models.BacktestResult, error) {
	if len(req.Prices) < 2 {
		return nil, models.ErrInsufficientData
	}
	if err := req.Signals.AlignedWith(req.Prices); err != nil {
		return nil, err
	}

	cash := req.InitialCapital
	var position *models.Position
	var pending *pendingOrder
	entryNotional := 0.0
	curve := make(EquityCurve, 1, len(req.Prices))
	curve[0] = req.InitialCapital
	trades := []models.Trade{}

	commission := req.Cost.CommissionRate
	slippage := req.Cost.SlippageRate

	for i := 1; i < len(req.Prices); i++ {
		bar := req.Prices[i]

		// Fill the order queued on the previous bar at this bar's open.
		if pending != nil {
			switch pending.side {
			case orderBuy:
				if position == nil {
					fill := bar.Open * (1 + slippage)
					size := 0.0
					if denom := fill * (1 + commission); denom > 0 && commission+slippage < 1 {
						size = cash / denom
					}
					if size > 0 {
						position = &models.Position{EntryPrice: fill, Size: size, EntryIndex: i}
						entryNotional = cash
						cash = 0
					}
				}
			case orderSell:
				if position != nil {
					fill := bar.Open * (1 - slippage)
					proceeds := position.Size * fill * (1 - commission)
					trades = append(trades, models.Trade{
						EntryIndex: position.EntryIndex,
						ExitIndex:  i,
						EntryPrice: position.EntryPrice,
						ExitPrice:  fill,
						Size:       position.Size,
						Profit:     proceeds - entryNotional,
					})
					cash = proceeds
					position = nil
				}
			}
			pending = nil
		}

		// Queue a new order from this bar's signal.
		if req.Signals[i] == models.SignalBuy && position == nil {
			pending = &pendingOrder{side: orderBuy}
		} else if req.Signals[i] == models.SignalSell && position != nil {
			pending = &pendingOrder{side: orderSell}
		}

		equity := cash
		if position != nil {
			equity += position.Size * bar.Close
		}
		curve = append(curve, equity)
	}

	// An order queued on the final bar can never fill; drop it. Any open
	// position is liquidated at the final close.
	if position != nil {
		last := len(req.Prices) - 1
		fill := req.Prices[last].Close * (1 - slippage)
		proceeds := position.Size * fill * (1 - commission)
		trades = append(trades, models.Trade{
			EntryIndex: position.EntryIndex,
			ExitIndex:  last,
			EntryPrice: position.EntryPrice,
			ExitPrice:  fill,
			Size:       position.Size,
			Profit:     proceeds - entryNotional,
		})
		cash = proceeds
		position = nil
	}

	metrics := CalculateMetricsAnnualized(curve, trades, annualization(req))
	if metrics.Error != "" {
		return nil, models.ErrInsufficientData
	}

	result := resultFromMetrics(req.Name, b.Name(), metrics)
	result.FinalValue = cash
	result.TotalReturn = (cash - req.InitialCapital) / req.InitialCapital
	result.EquityCurve = curve
	return result, nil
}
