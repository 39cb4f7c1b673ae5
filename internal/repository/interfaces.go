package repository

import (
	"context"

	"github.com/yourusername/signal-bench/internal/models"
)

// BacktestResultRepository defines the interface for backtest result
// persistence. The engine itself never requires a database; callers wire an
// implementation in when results should outlive the process.
type BacktestResultRepository interface {
	SaveResult(ctx context.Context, result *models.BacktestResult) error
	GetByStrategyName(ctx context.Context, name string) ([]*models.BacktestResult, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
}
