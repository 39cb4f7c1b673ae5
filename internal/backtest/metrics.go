package backtest

import (
	"encoding/json"
	"math"

	"github.com/yourusername/signal-bench/internal/models"
)

// DefaultAnnualizationPeriods is the number of bar periods per year assumed
// by the annualized statistics when a request does not set its own. Bars are
// treated as daily.
const DefaultAnnualizationPeriods = models.DefaultAnnualizationPeriods

// annualization returns the periods-per-year factor a request asks for,
// falling back to the daily-bar default when unset
func annualization(req models.BacktestRequest) float64 {
	if req.AnnualizationPeriods > 0 {
		return req.AnnualizationPeriods
	}
	return DefaultAnnualizationPeriods
}

// Metrics represents the performance-statistics set derived from an equity
// curve and trade ledger. Every field is finite: NaN or infinite
// intermediates are normalized to 0 so results are always safe to serialize
// and compare.
type Metrics struct {
	TotalReturn  float64 `json:"total_return"`
	AnnualReturn float64 `json:"annual_return"`
	Volatility   float64 `json:"volatility"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	CalmarRatio  float64 `json:"calmar_ratio"`
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	AvgWin       float64 `json:"avg_win"`
	AvgLoss      float64 `json:"avg_loss"`
	TotalTrades  int     `json:"total_trades"`
	Error        string  `json:"error,omitempty"`
}

// CalculateMetrics calculates the statistics set from an equity curve and an
// optional trade ledger, annualizing at the default 252 periods per year.
// A curve with fewer than 2 points yields a Metrics value carrying Error
// rather than an error return, consistent with the dispatcher's failure
// contract.
func CalculateMetrics(curve EquityCurve, trades []models.Trade) Metrics {
	return CalculateMetricsAnnualized(curve, trades, DefaultAnnualizationPeriods)
}

// CalculateMetricsAnnualized calculates the statistics set with an explicit
// annualization factor
func CalculateMetricsAnnualized(curve EquityCurve, trades []models.Trade, periodsPerYear float64) Metrics {
	if len(curve) < 2 {
		return Metrics{Error: models.ErrInsufficientData.Error()}
	}

	returns := curve.Returns()
	totalReturn := 0.0
	if curve[0] != 0 {
		totalReturn = curve[len(curve)-1]/curve[0] - 1
	}
	annualReturn := math.Pow(1+totalReturn, periodsPerYear/float64(len(curve))) - 1

	std := stddev(returns)
	volatility := std * math.Sqrt(periodsPerYear)

	sharpe := 0.0
	if std > 0 {
		sharpe = average(returns) / std * math.Sqrt(periodsPerYear)
	}

	downside := downsideStddev(returns) * math.Sqrt(periodsPerYear)
	sortino := 0.0
	if downside > 0 {
		sortino = average(returns) * math.Sqrt(periodsPerYear) / downside
	}

	maxDD := curve.MaxDrawdown()
	calmar := 0.0
	if maxDD != 0 {
		calmar = annualReturn / math.Abs(maxDD)
	}

	winRate, profitFactor, avgWin, avgLoss := tradeStats(trades)

	return Metrics{
		TotalReturn:  sanitize(totalReturn),
		AnnualReturn: sanitize(annualReturn),
		Volatility:   sanitize(volatility),
		SharpeRatio:  sanitize(sharpe),
		SortinoRatio: sanitize(sortino),
		MaxDrawdown:  sanitize(maxDD),
		CalmarRatio:  sanitize(calmar),
		WinRate:      sanitize(winRate),
		ProfitFactor: sanitize(profitFactor),
		AvgWin:       sanitize(avgWin),
		AvgLoss:      sanitize(avgLoss),
		TotalTrades:  len(trades),
	}
}

// ToJSON exports metrics to JSON
func (m Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func tradeStats(trades []models.Trade) (winRate, profitFactor, avgWin, avgLoss float64) {
	if len(trades) == 0 {
		return 0, 0, 0, 0
	}

	wins := 0
	winSum := 0.0
	lossSum := 0.0
	losses := 0
	for _, trade := range trades {
		if trade.Profit > 0 {
			wins++
			winSum += trade.Profit
		} else if trade.Profit < 0 {
			losses++
			lossSum += trade.Profit
		}
	}

	winRate = float64(wins) / float64(len(trades))
	if lossSum != 0 {
		profitFactor = winSum / math.Abs(lossSum)
	}
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = math.Abs(lossSum / float64(losses))
	}
	return winRate, profitFactor, avgWin, avgLoss
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func downsideStddev(values []float64) float64 {
	negatives := make([]float64, 0)
	for _, v := range values {
		if v < 0 {
			negatives = append(negatives, v)
		}
	}
	return stddev(negatives)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
