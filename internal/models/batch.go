package models

// BacktestRequest represents one backtest evaluation: a price series, an
// aligned signal series and the evaluation parameters
type BacktestRequest struct {
	Name           string       `json:"name"`
	Prices         PriceSeries  `json:"prices"`
	Signals        SignalSeries `json:"signals"`
	InitialCapital float64      `json:"initial_capital"`
	Cost           CostModel    `json:"cost_model"`

	// AnnualizationPeriods is the number of bar periods per year used by the
	// annualized statistics. Zero means the daily-bar default.
	AnnualizationPeriods float64 `json:"annualization_periods"`
}

// NewBacktestRequest builds a request with the documented defaults applied
func NewBacktestRequest(name string, prices PriceSeries, signals SignalSeries) BacktestRequest {
	return BacktestRequest{
		Name:                 name,
		Prices:               prices,
		Signals:              signals,
		InitialCapital:       DefaultInitialCapital,
		Cost:                 DefaultCostModel(),
		AnnualizationPeriods: DefaultAnnualizationPeriods,
	}
}

// Validate checks the request invariants shared by every backend
func (r BacktestRequest) Validate() error {
	if r.Name == "" {
		return ErrEmptyStrategyName
	}
	if len(r.Prices) < 2 {
		return ErrInsufficientData
	}
	if err := r.Signals.AlignedWith(r.Prices); err != nil {
		return err
	}
	if err := r.Prices.Validate(); err != nil {
		return err
	}
	if r.InitialCapital <= 0 {
		return ErrNonPositiveCapital
	}
	if r.AnnualizationPeriods < 0 {
		return ErrNegativeAnnualization
	}
	return r.Cost.Validate()
}

// BatchRunStats accumulates process-lifetime counters for the batch runner.
// Counters are created with the runner, incremented per batch and never
// reset automatically.
type BatchRunStats struct {
	TotalBacktests     int     `json:"total_backtests"`
	Successful         int     `json:"successful"`
	Failed             int     `json:"failed"`
	Timeouts           int     `json:"timeouts"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}
