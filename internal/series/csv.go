package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/signal-bench/internal/models"
)

// price CSV layout: timestamp,open,high,low,close,volume
// signal CSV layout: timestamp,signal

const timestampLayout = "2006-01-02T15:04:05Z07:00"

// LoadPrices reads a price series from a CSV file. The first row is treated
// as a header when its second column is not numeric. Prices are parsed with
// decimal arithmetic so values like 108.9 survive the round trip exactly as
// written.
func LoadPrices(path string) (models.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	return ReadPrices(f)
}

// ReadPrices parses a price series from CSV data.
func ReadPrices(r io.Reader) (models.PriceSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read price csv: %w", err)
	}
	records = skipHeader(records)
	if len(records) == 0 {
		return nil, models.ErrInsufficientData
	}

	prices := make(models.PriceSeries, 0, len(records))
	for i, record := range records {
		if len(record) < 6 {
			return nil, fmt.Errorf("price row %d has %d columns, expected 6", i+1, len(record))
		}

		ts, err := parseTimestamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("price row %d: %w", i+1, err)
		}

		fields := make([]float64, 5)
		for j, raw := range record[1:6] {
			d, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("price row %d column %d: invalid number %q", i+1, j+2, raw)
			}
			fields[j], _ = d.Float64()
		}

		prices = append(prices, models.PriceBar{
			Timestamp: ts,
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
		})
	}

	if err := prices.Validate(); err != nil {
		return nil, err
	}
	return prices, nil
}

// LoadSignals reads a signal series from a CSV file with rows of
// timestamp,signal where signal is -1, 0 or 1.
func LoadSignals(path string) (models.SignalSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open signal file: %w", err)
	}
	defer f.Close()

	return ReadSignals(f)
}

// ReadSignals parses a signal series from CSV data.
func ReadSignals(r io.Reader) (models.SignalSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read signal csv: %w", err)
	}
	records = skipHeader(records)

	signals := make(models.SignalSeries, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("signal row %d has %d columns, expected 2", i+1, len(record))
		}

		d, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil || !d.IsInteger() {
			return nil, fmt.Errorf("signal row %d: invalid signal %q", i+1, record[1])
		}
		s, err := models.ParseSignal(int(d.IntPart()))
		if err != nil {
			return nil, fmt.Errorf("signal row %d: %w", i+1, err)
		}
		signals = append(signals, s)
	}
	return signals, nil
}

func skipHeader(records [][]string) [][]string {
	if len(records) == 0 || len(records[0]) < 2 {
		return records
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(records[0][1])); err != nil {
		return records[1:]
	}
	return records
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{timestampLayout, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
