package backtest

import (
	"testing"
	"time"

	"github.com/yourusername/signal-bench/internal/models"
)

func TestCapabilitiesSelect(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want string
	}{
		{"all available", Capabilities{OrderDriven: true, Vectorized: true}, BackendOrderDriven},
		{"order-driven only", Capabilities{OrderDriven: true}, BackendOrderDriven},
		{"vectorized only", Capabilities{Vectorized: true}, BackendVectorized},
		{"none", Capabilities{}, BackendBuiltin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.Select(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestBuiltinAndVectorizedAgree(t *testing.T) {
	req := models.NewBacktestRequest(
		"agreement",
		testPrices(100, 105, 103, 110, 108, 112),
		testSignals(0, 1, 0, -1, 1, 0),
	)

	builtin, err := NewBuiltinBackend().Run(req)
	if err != nil {
		t.Fatalf("builtin backend error: %v", err)
	}
	vectorized, err := NewVectorizedBackend().Run(req)
	if err != nil {
		t.Fatalf("vectorized backend error: %v", err)
	}

	// Both execute at the close with the same cost factors, so the closed-form
	// path must match the stateful simulation.
	if !almostEqual(builtin.FinalValue, vectorized.FinalValue, 1e-6) {
		t.Errorf("final values disagree: builtin %v vs vectorized %v", builtin.FinalValue, vectorized.FinalValue)
	}
	if !almostEqual(builtin.TotalReturn, vectorized.TotalReturn, 1e-9) {
		t.Errorf("total returns disagree: builtin %v vs vectorized %v", builtin.TotalReturn, vectorized.TotalReturn)
	}
	if builtin.TotalTrades != vectorized.TotalTrades {
		t.Errorf("trade counts disagree: builtin %d vs vectorized %d", builtin.TotalTrades, vectorized.TotalTrades)
	}
	if builtin.TotalTrades != 2 {
		t.Errorf("expected 2 trades, got %d", builtin.TotalTrades)
	}
}

func TestOrderDrivenFillsAtNextOpen(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := models.PriceSeries{
		{Timestamp: base, Open: 100, High: 103, Low: 99, Close: 102, Volume: 1000},
		{Timestamp: base.AddDate(0, 0, 1), Open: 103, High: 106, Low: 102, Close: 105, Volume: 1000},
		{Timestamp: base.AddDate(0, 0, 2), Open: 106, High: 107, Low: 103, Close: 104, Volume: 1000},
		{Timestamp: base.AddDate(0, 0, 3), Open: 105, High: 108, Low: 104, Close: 107, Volume: 1000},
	}
	req := models.BacktestRequest{
		Name:           "next-open",
		Prices:         prices,
		Signals:        testSignals(0, 1, 0, 0),
		InitialCapital: 10000,
	}

	result, err := NewOrderDrivenBackend().Run(req)
	if err != nil {
		t.Fatalf("order-driven backend error: %v", err)
	}
	if result.TotalTrades != 1 {
		t.Fatalf("expected 1 trade, got %d", result.TotalTrades)
	}

	// The BUY queued on bar 1 fills at bar 2's open of 106, and the open
	// position liquidates at the final close of 107.
	size := 10000.0 / 106.0
	wantFinal := size * 107.0
	if !almostEqual(result.FinalValue, wantFinal, 1e-6) {
		t.Errorf("expected final value %v, got %v", wantFinal, result.FinalValue)
	}
}

func TestOrderDrivenSlippageMovesFillAgainstOrder(t *testing.T) {
	prices := testPrices(100, 100, 100, 100)
	cost := models.CostModel{SlippageRate: 0.01}
	req := models.BacktestRequest{
		Name:           "slippage",
		Prices:         prices,
		Signals:        testSignals(0, 1, -1, 0),
		InitialCapital: 10000,
		Cost:           cost,
	}

	result, err := NewOrderDrivenBackend().Run(req)
	if err != nil {
		t.Fatalf("order-driven backend error: %v", err)
	}
	if result.TotalTrades != 1 {
		t.Fatalf("expected 1 trade, got %d", result.TotalTrades)
	}
	// Buy fills above the open, sell below, so a flat market loses twice the
	// slippage.
	wantFinal := 10000.0 * (1 - 0.01) / (1 + 0.01)
	if !almostEqual(result.FinalValue, wantFinal, 1e-6) {
		t.Errorf("expected final value %v, got %v", wantFinal, result.FinalValue)
	}
}

func TestOrderDrivenDropsFinalBarOrder(t *testing.T) {
	req := models.BacktestRequest{
		Name:           "final-bar",
		Prices:         testPrices(100, 101, 102, 103),
		Signals:        testSignals(0, 0, 0, 1),
		InitialCapital: 10000,
	}

	result, err := NewOrderDrivenBackend().Run(req)
	if err != nil {
		t.Fatalf("order-driven backend error: %v", err)
	}
	if result.TotalTrades != 0 {
		t.Errorf("expected final-bar order to be dropped, got %d trades", result.TotalTrades)
	}
	if result.FinalValue != 10000 {
		t.Errorf("expected capital untouched, got %v", result.FinalValue)
	}
}

func TestVectorizedDegenerateCostTakesNoTrade(t *testing.T) {
	req := models.BacktestRequest{
		Name:           "degenerate",
		Prices:         testPrices(100, 100, 100),
		Signals:        testSignals(0, 1, -1),
		InitialCapital: 10000,
		Cost:           models.CostModel{CommissionRate: 0.6, SlippageRate: 0.5},
	}

	result, err := NewVectorizedBackend().Run(req)
	if err != nil {
		t.Fatalf("vectorized backend error: %v", err)
	}
	if result.TotalTrades != 0 {
		t.Errorf("expected no trades with degenerate costs, got %d", result.TotalTrades)
	}
	if result.FinalValue != 10000 {
		t.Errorf("expected capital untouched, got %v", result.FinalValue)
	}
}

func TestBackendsHonorAnnualizationPeriods(t *testing.T) {
	daily := models.NewBacktestRequest(
		"periods",
		testPrices(100, 105, 103, 108),
		testSignals(0, 1, 0, -1),
	)
	weekly := daily
	weekly.AnnualizationPeriods = 52

	backends := []Backend{
		NewBuiltinBackend(),
		NewVectorizedBackend(),
		NewOrderDrivenBackend(),
	}
	for _, backend := range backends {
		dailyResult, err := backend.Run(daily)
		if err != nil {
			t.Fatalf("%s backend error: %v", backend.Name(), err)
		}
		weeklyResult, err := backend.Run(weekly)
		if err != nil {
			t.Fatalf("%s backend error: %v", backend.Name(), err)
		}

		// Same data, different periods-per-year: the annualized statistics
		// must move while the per-run totals stay put.
		if dailyResult.AnnualReturn == weeklyResult.AnnualReturn {
			t.Errorf("%s: annual return ignores annualization periods (%v)", backend.Name(), dailyResult.AnnualReturn)
		}
		if dailyResult.Volatility == weeklyResult.Volatility {
			t.Errorf("%s: volatility ignores annualization periods (%v)", backend.Name(), dailyResult.Volatility)
		}
		if dailyResult.TotalReturn != weeklyResult.TotalReturn {
			t.Errorf("%s: total return must not depend on annualization periods", backend.Name())
		}
	}
}

func TestBackendsDefaultAnnualizationWhenUnset(t *testing.T) {
	req := models.BacktestRequest{
		Name:           "unset-periods",
		Prices:         testPrices(100, 105, 103, 108),
		Signals:        testSignals(0, 1, 0, -1),
		InitialCapital: 10000,
	}
	explicit := req
	explicit.AnnualizationPeriods = DefaultAnnualizationPeriods

	zeroResult, err := NewBuiltinBackend().Run(req)
	if err != nil {
		t.Fatalf("builtin backend error: %v", err)
	}
	explicitResult, err := NewBuiltinBackend().Run(explicit)
	if err != nil {
		t.Fatalf("builtin backend error: %v", err)
	}

	if zeroResult.AnnualReturn != explicitResult.AnnualReturn {
		t.Errorf("zero periods must fall back to the default: %v vs %v", zeroResult.AnnualReturn, explicitResult.AnnualReturn)
	}
	if zeroResult.Volatility != explicitResult.Volatility {
		t.Errorf("zero periods must fall back to the default: %v vs %v", zeroResult.Volatility, explicitResult.Volatility)
	}
}

func TestBuiltinForceCloseDrivesTotalReturn(t *testing.T) {
	req := models.BacktestRequest{
		Name:           "force-close",
		Prices:         testPrices(100, 100, 110, 120),
		Signals:        testSignals(0, 1, 0, 0),
		InitialCapital: 10000,
	}

	result, err := NewBuiltinBackend().Run(req)
	if err != nil {
		t.Fatalf("builtin backend error: %v", err)
	}
	if !almostEqual(result.FinalValue, 12000, 1e-6) {
		t.Errorf("expected final value 12000, got %v", result.FinalValue)
	}
	if !almostEqual(result.TotalReturn, 0.2, 1e-9) {
		t.Errorf("expected total return 0.2, got %v", result.TotalReturn)
	}
	if result.TotalTrades != 1 {
		t.Errorf("expected 1 force-closed trade, got %d", result.TotalTrades)
	}
}
