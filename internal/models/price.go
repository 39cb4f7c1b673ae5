package models

import "time"

// PriceBar represents a single OHLCV bar in a historical price series
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is an ordered, gap-free sequence of price bars.
// Timestamps must be strictly increasing; the series is immutable once ingested.
type PriceSeries []PriceBar

// Validate checks series ordering and duplicate timestamps
func (p PriceSeries) Validate() error {
	for i := 1; i < len(p); i++ {
		if !p[i].Timestamp.After(p[i-1].Timestamp) {
			return ErrUnorderedSeries
		}
	}
	return nil
}

// Closes extracts the close prices in bar order
func (p PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p))
	for i, bar := range p {
		closes[i] = bar.Close
	}
	return closes
}
