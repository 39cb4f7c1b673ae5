// Package series adapts external price and signal data into the validated
// series types the backtest engine consumes.
package series

import (
	"fmt"
	"time"

	"github.com/yourusername/signal-bench/internal/models"
)

// FromCloses builds a PriceSeries from close prices alone. Open, high and low
// are set to the close and volume to zero. Timestamps are synthesized as
// consecutive days starting at start.
func FromCloses(start time.Time, closes []float64) (models.PriceSeries, error) {
	if len(closes) == 0 {
		return nil, models.ErrInsufficientData
	}

	prices := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		if c <= 0 {
			return nil, fmt.Errorf("close price at index %d is not positive: %v", i, c)
		}
		prices[i] = models.PriceBar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    0,
		}
	}
	return prices, prices.Validate()
}

// FromOHLCV builds a PriceSeries from parallel OHLCV slices. All slices must
// have the same length as timestamps.
func FromOHLCV(timestamps []time.Time, open, high, low, closes, volume []float64) (models.PriceSeries, error) {
	n := len(timestamps)
	if n == 0 {
		return nil, models.ErrInsufficientData
	}
	for name, s := range map[string][]float64{
		"open": open, "high": high, "low": low, "close": closes, "volume": volume,
	} {
		if len(s) != n {
			return nil, fmt.Errorf("%s has %d entries, expected %d: %w", name, len(s), n, models.ErrSeriesLengthMismatch)
		}
	}

	prices := make(models.PriceSeries, n)
	for i := 0; i < n; i++ {
		prices[i] = models.PriceBar{
			Timestamp: timestamps[i],
			Open:      open[i],
			High:      high[i],
			Low:       low[i],
			Close:     closes[i],
			Volume:    volume[i],
		}
	}
	return prices, prices.Validate()
}

// SignalsFromInts converts raw integer signals (-1, 0, 1) into a SignalSeries.
func SignalsFromInts(values []int) (models.SignalSeries, error) {
	signals := make(models.SignalSeries, len(values))
	for i, v := range values {
		s, err := models.ParseSignal(v)
		if err != nil {
			return nil, fmt.Errorf("signal at index %d: %w", i, err)
		}
		signals[i] = s
	}
	return signals, nil
}
