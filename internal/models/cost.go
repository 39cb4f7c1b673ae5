package models

// Default execution cost and sizing parameters.
// DefaultAnnualizationPeriods assumes daily bars.
const (
	DefaultCommissionRate       = 0.001
	DefaultSlippageRate         = 0.0005
	DefaultInitialCapital       = 10000.0
	DefaultAnnualizationPeriods = 252.0
)

// CostModel represents symmetric per-trade execution costs, each expressed
// as a fraction of notional applied on both entry and exit
type CostModel struct {
	CommissionRate float64 `json:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate"`
}

// DefaultCostModel returns the documented default cost model
func DefaultCostModel() CostModel {
	return CostModel{
		CommissionRate: DefaultCommissionRate,
		SlippageRate:   DefaultSlippageRate,
	}
}

// Validate checks cost rates are non-negative
func (c CostModel) Validate() error {
	if c.CommissionRate < 0 || c.SlippageRate < 0 {
		return ErrNegativeCostRate
	}
	return nil
}

// TotalRate returns the combined per-side cost fraction.
// A combined rate >= 1.0 is permitted; it drives entry sizing to zero and
// is handled as "no trade taken" by the simulator.
func (c CostModel) TotalRate() float64 {
	return c.CommissionRate + c.SlippageRate
}
