package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Result statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusTimeout   = "timeout"
)

// BacktestResult represents the outcome of a single backtest evaluation.
// Every backend produces this exact schema regardless of its internal
// computation path: returns and drawdown are fractions (never percentages),
// max_drawdown is a negative fraction in [-1, 0], and every statistics field
// is finite.
type BacktestResult struct {
	ID           uuid.UUID `db:"id" json:"id"`
	StrategyName string    `db:"strategy_name" json:"strategy_name"`
	Backend      string    `db:"backend" json:"backend"`

	TotalReturn  float64 `db:"total_return" json:"total_return"`
	AnnualReturn float64 `db:"annual_return" json:"annual_return"`
	Volatility   float64 `db:"volatility" json:"volatility"`
	SharpeRatio  float64 `db:"sharpe_ratio" json:"sharpe_ratio"`
	SortinoRatio float64 `db:"sortino_ratio" json:"sortino_ratio"`
	MaxDrawdown  float64 `db:"max_drawdown" json:"max_drawdown"`
	CalmarRatio  float64 `db:"calmar_ratio" json:"calmar_ratio"`
	WinRate      float64 `db:"win_rate" json:"win_rate"`
	ProfitFactor float64 `db:"profit_factor" json:"profit_factor"`
	AvgWin       float64 `db:"avg_win" json:"avg_win"`
	AvgLoss      float64 `db:"avg_loss" json:"avg_loss"`
	TotalTrades  int     `db:"total_trades" json:"total_trades"`
	FinalValue   float64 `db:"final_value" json:"final_value"`

	EquityCurve []float64 `db:"-" json:"equity_curve,omitempty"`

	Status    string    `db:"status" json:"status"`
	Error     string    `db:"error" json:"error,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewFailedResult builds a failed result carrying the error message
func NewFailedResult(name, backend string, err error) *BacktestResult {
	result := &BacktestResult{
		ID:           uuid.New(),
		StrategyName: name,
		Backend:      backend,
		Status:       StatusFailed,
		CreatedAt:    time.Now().UTC(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// NewTimeoutResult builds a timeout result for a task that exceeded its deadline
func NewTimeoutResult(name string) *BacktestResult {
	return &BacktestResult{
		ID:           uuid.New(),
		StrategyName: name,
		Status:       StatusTimeout,
		Error:        "timeout",
		CreatedAt:    time.Now().UTC(),
	}
}

// Failed reports whether the result carries an error
func (r *BacktestResult) Failed() bool {
	return r.Status != StatusCompleted
}

// ToJSON exports the result to JSON
func (r *BacktestResult) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}
