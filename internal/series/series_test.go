package series

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/signal-bench/internal/models"
)

const pricesCSV = `timestamp,open,high,low,close,volume
2024-01-02,100,102,99,101,1500
2024-01-03,101,112,100,110,1800
2024-01-04,110,122,109,121,2100
2024-01-05,121,121,108,108.9,1900
`

const signalsCSV = `timestamp,signal
2024-01-02,0
2024-01-03,1
2024-01-04,0
2024-01-05,-1
`

func TestReadPrices(t *testing.T) {
	prices, err := ReadPrices(strings.NewReader(pricesCSV))
	if err != nil {
		t.Fatalf("ReadPrices returned error: %v", err)
	}
	if len(prices) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(prices))
	}
	if prices[0].Open != 100 || prices[0].Close != 101 || prices[0].Volume != 1500 {
		t.Errorf("unexpected first bar: %+v", prices[0])
	}
	if prices[3].Close != 108.9 {
		t.Errorf("expected exact close 108.9, got %v", prices[3].Close)
	}
	if err := prices.Validate(); err != nil {
		t.Errorf("loaded series failed validation: %v", err)
	}
}

func TestReadPricesWithoutHeader(t *testing.T) {
	raw := "2024-01-02,100,102,99,101,1500\n2024-01-03,101,112,100,110,1800\n"
	prices, err := ReadPrices(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadPrices returned error: %v", err)
	}
	if len(prices) != 2 {
		t.Errorf("expected 2 bars, got %d", len(prices))
	}
}

func TestReadPricesRejectsUnordered(t *testing.T) {
	raw := "2024-01-03,101,112,100,110,1800\n2024-01-02,100,102,99,101,1500\n"
	_, err := ReadPrices(strings.NewReader(raw))
	if !errors.Is(err, models.ErrUnorderedSeries) {
		t.Errorf("expected ErrUnorderedSeries, got %v", err)
	}
}

func TestReadPricesRejectsBadNumber(t *testing.T) {
	raw := "2024-01-02,100,102,xx,101,1500\n"
	if _, err := ReadPrices(strings.NewReader(raw)); err == nil {
		t.Error("expected error for non-numeric column")
	}
}

func TestReadPricesRejectsShortRow(t *testing.T) {
	raw := "2024-01-02,100,102\n"
	if _, err := ReadPrices(strings.NewReader(raw)); err == nil {
		t.Error("expected error for short row")
	}
}

func TestReadPricesEmpty(t *testing.T) {
	_, err := ReadPrices(strings.NewReader("timestamp,open,high,low,close,volume\n"))
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestReadSignals(t *testing.T) {
	signals, err := ReadSignals(strings.NewReader(signalsCSV))
	if err != nil {
		t.Fatalf("ReadSignals returned error: %v", err)
	}
	want := models.SignalSeries{models.SignalHold, models.SignalBuy, models.SignalHold, models.SignalSell}
	if len(signals) != len(want) {
		t.Fatalf("expected %d signals, got %d", len(want), len(signals))
	}
	for i := range want {
		if signals[i] != want[i] {
			t.Errorf("signal[%d]: expected %v, got %v", i, want[i], signals[i])
		}
	}
}

func TestReadSignalsRejectsInvalidValue(t *testing.T) {
	if _, err := ReadSignals(strings.NewReader("2024-01-02,2\n")); err == nil {
		t.Error("expected error for out-of-range signal")
	}
	if _, err := ReadSignals(strings.NewReader("2024-01-02,0.5\n")); err == nil {
		t.Error("expected error for fractional signal")
	}
}

func TestFromCloses(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	prices, err := FromCloses(start, []float64{100, 110, 121})
	if err != nil {
		t.Fatalf("FromCloses returned error: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(prices))
	}
	if prices[1].Open != 110 || prices[1].Close != 110 {
		t.Errorf("expected open and close set to the close value, got %+v", prices[1])
	}
	if !prices[1].Timestamp.After(prices[0].Timestamp) {
		t.Error("expected strictly increasing synthesized timestamps")
	}
}

func TestFromClosesRejectsNonPositive(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if _, err := FromCloses(start, []float64{100, 0}); err == nil {
		t.Error("expected error for non-positive close")
	}
	if _, err := FromCloses(start, nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Error("expected ErrInsufficientData for empty closes")
	}
}

func TestFromOHLCVLengthMismatch(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	timestamps := []time.Time{start, start.AddDate(0, 0, 1)}
	two := []float64{1, 2}
	one := []float64{1}

	_, err := FromOHLCV(timestamps, two, two, two, two, one)
	if !errors.Is(err, models.ErrSeriesLengthMismatch) {
		t.Errorf("expected ErrSeriesLengthMismatch, got %v", err)
	}
}

func TestSignalsFromInts(t *testing.T) {
	signals, err := SignalsFromInts([]int{0, 1, -1})
	if err != nil {
		t.Fatalf("SignalsFromInts returned error: %v", err)
	}
	if signals[1] != models.SignalBuy || signals[2] != models.SignalSell {
		t.Errorf("unexpected signals: %v", signals)
	}

	if _, err := SignalsFromInts([]int{0, 3}); err == nil {
		t.Error("expected error for invalid value")
	}
}
