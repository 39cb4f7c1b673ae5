package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/signal-bench/internal/database"
	"github.com/yourusername/signal-bench/internal/models"
)

const backtestResultColumns = `
	id, strategy_name, backend, total_return, annual_return, volatility,
	sharpe_ratio, sortino_ratio, max_drawdown, calmar_ratio, win_rate,
	profit_factor, avg_win, avg_loss, total_trades, final_value,
	status, error, created_at`

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// SaveResult inserts a backtest result
func (r *PostgresBacktestResultRepository) SaveResult(ctx context.Context, result *models.BacktestResult) error {
	query := `
		INSERT INTO backtest_results (` + backtestResultColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.StrategyName, result.Backend,
		result.TotalReturn, result.AnnualReturn, result.Volatility,
		result.SharpeRatio, result.SortinoRatio, result.MaxDrawdown, result.CalmarRatio,
		result.WinRate, result.ProfitFactor, result.AvgWin, result.AvgLoss,
		result.TotalTrades, result.FinalValue,
		result.Status, result.Error, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest result: %w", err)
	}
	return nil
}

// GetByStrategyName retrieves backtest results for a strategy, newest first
func (r *PostgresBacktestResultRepository) GetByStrategyName(ctx context.Context, name string) ([]*models.BacktestResult, error) {
	query := `
		SELECT` + backtestResultColumns + `
		FROM backtest_results WHERE strategy_name = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.GetPool().Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetLatest retrieves the most recent backtest results
func (r *PostgresBacktestResultRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error) {
	query := `
		SELECT` + backtestResultColumns + `
		FROM backtest_results ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResults(rows rowScanner) ([]*models.BacktestResult, error) {
	var results []*models.BacktestResult
	for rows.Next() {
		result := &models.BacktestResult{}
		if err := rows.Scan(
			&result.ID, &result.StrategyName, &result.Backend,
			&result.TotalReturn, &result.AnnualReturn, &result.Volatility,
			&result.SharpeRatio, &result.SortinoRatio, &result.MaxDrawdown, &result.CalmarRatio,
			&result.WinRate, &result.ProfitFactor, &result.AvgWin, &result.AvgLoss,
			&result.TotalTrades, &result.FinalValue,
			&result.Status, &result.Error, &result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
