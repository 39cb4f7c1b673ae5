package backtest

import (
	"fmt"
	"strings"

	"github.com/yourusername/signal-bench/internal/models"
)

// GenerateConsoleReport formats a backtest result for terminal output
func GenerateConsoleReport(result *models.BacktestResult) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Strategy: %s\n", result.StrategyName))
	builder.WriteString(fmt.Sprintf("Backend: %s\n", result.Backend))
	builder.WriteString(fmt.Sprintf("Status: %s\n", result.Status))
	if result.Error != "" {
		builder.WriteString(fmt.Sprintf("Error: %s\n", result.Error))
		return builder.String()
	}
	builder.WriteString(fmt.Sprintf("Total Return: %.2f%%\n", result.TotalReturn*100))
	builder.WriteString(fmt.Sprintf("Annual Return: %.2f%%\n", result.AnnualReturn*100))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", result.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Sortino Ratio: %.2f\n", result.SortinoRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", result.MaxDrawdown*100))
	builder.WriteString(fmt.Sprintf("Calmar Ratio: %.2f\n", result.CalmarRatio))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", result.WinRate*100))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", result.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Total Trades: %d\n", result.TotalTrades))
	builder.WriteString(fmt.Sprintf("Final Value: %.2f\n", result.FinalValue))
	return builder.String()
}

// GenerateBatchSummary formats batch statistics for terminal output
func GenerateBatchSummary(stats models.BatchRunStats) string {
	var builder strings.Builder
	builder.WriteString("Batch Summary\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Total Backtests: %d\n", stats.TotalBacktests))
	builder.WriteString(fmt.Sprintf("Successful: %d\n", stats.Successful))
	builder.WriteString(fmt.Sprintf("Failed: %d\n", stats.Failed))
	builder.WriteString(fmt.Sprintf("Timeouts: %d\n", stats.Timeouts))
	builder.WriteString(fmt.Sprintf("Avg Duration: %.3fs\n", stats.AvgDurationSeconds))
	return builder.String()
}
