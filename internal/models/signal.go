package models

import "fmt"

// Signal represents a single trading instruction aligned with one price bar
type Signal int8

// Signal values
const (
	SignalSell Signal = -1
	SignalHold Signal = 0
	SignalBuy  Signal = 1
)

// String returns the human-readable signal name
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	case SignalHold:
		return "HOLD"
	default:
		return fmt.Sprintf("Signal(%d)", int8(s))
	}
}

// ParseSignal converts a raw integer value into a Signal
func ParseSignal(value int) (Signal, error) {
	switch value {
	case -1:
		return SignalSell, nil
	case 0:
		return SignalHold, nil
	case 1:
		return SignalBuy, nil
	default:
		return SignalHold, fmt.Errorf("invalid signal value %d: must be -1, 0 or 1", value)
	}
}

// SignalSeries is a sequence of signals aligned 1:1 by index with a price series
type SignalSeries []Signal

// AlignedWith verifies the 1:1 index alignment invariant against a price series
func (s SignalSeries) AlignedWith(prices PriceSeries) error {
	if len(s) != len(prices) {
		return fmt.Errorf("%w: %d signals vs %d bars", ErrSeriesLengthMismatch, len(s), len(prices))
	}
	return nil
}
