package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseSignal(t *testing.T) {
	tests := []struct {
		value   int
		want    Signal
		wantErr bool
	}{
		{-1, SignalSell, false},
		{0, SignalHold, false},
		{1, SignalBuy, false},
		{2, SignalHold, true},
		{-5, SignalHold, true},
	}

	for _, tt := range tests {
		got, err := ParseSignal(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSignal(%d): expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSignal(%d): unexpected error %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("ParseSignal(%d): expected %v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestSignalString(t *testing.T) {
	if SignalBuy.String() != "BUY" || SignalSell.String() != "SELL" || SignalHold.String() != "HOLD" {
		t.Error("unexpected signal names")
	}
	if Signal(5).String() != "Signal(5)" {
		t.Errorf("unexpected out-of-range name: %s", Signal(5).String())
	}
}

func TestSignalSeriesAlignedWith(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := PriceSeries{
		{Timestamp: base, Close: 100},
		{Timestamp: base.AddDate(0, 0, 1), Close: 101},
	}

	if err := (SignalSeries{SignalHold, SignalBuy}).AlignedWith(prices); err != nil {
		t.Errorf("aligned series rejected: %v", err)
	}

	err := (SignalSeries{SignalHold}).AlignedWith(prices)
	if !errors.Is(err, ErrSeriesLengthMismatch) {
		t.Errorf("expected ErrSeriesLengthMismatch, got %v", err)
	}
}
