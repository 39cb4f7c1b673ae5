package models

import (
	"errors"
	"testing"
	"time"
)

func TestPriceSeriesValidate(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	ordered := PriceSeries{
		{Timestamp: base, Close: 100},
		{Timestamp: base.AddDate(0, 0, 1), Close: 101},
	}
	if err := ordered.Validate(); err != nil {
		t.Errorf("ordered series rejected: %v", err)
	}

	duplicate := PriceSeries{
		{Timestamp: base, Close: 100},
		{Timestamp: base, Close: 101},
	}
	if !errors.Is(duplicate.Validate(), ErrUnorderedSeries) {
		t.Error("expected duplicate timestamps to be rejected")
	}

	reversed := PriceSeries{
		{Timestamp: base.AddDate(0, 0, 1), Close: 100},
		{Timestamp: base, Close: 101},
	}
	if !errors.Is(reversed.Validate(), ErrUnorderedSeries) {
		t.Error("expected reversed timestamps to be rejected")
	}
}

func TestPriceSeriesCloses(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := PriceSeries{
		{Timestamp: base, Close: 100.5},
		{Timestamp: base.AddDate(0, 0, 1), Close: 101.25},
	}

	closes := prices.Closes()
	if len(closes) != 2 || closes[0] != 100.5 || closes[1] != 101.25 {
		t.Errorf("unexpected closes: %v", closes)
	}
}
