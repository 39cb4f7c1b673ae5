package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// EquityCurve is the portfolio value at each bar, one point per price bar,
// starting at initial capital
type EquityCurve []float64

// Returns calculates periodic returns between consecutive equity points
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, e[i]/prev-1)
	}
	return returns
}

// MaxDrawdown calculates the largest fractional decline from the running
// peak, expressed as a negative fraction in [-1, 0]
func (e EquityCurve) MaxDrawdown() float64 {
	maxDD := 0.0
	peak := 0.0
	for _, value := range e {
		if value > peak {
			peak = value
		}
		if peak == 0 {
			continue
		}
		drawdown := (value - peak) / peak
		if drawdown < maxDD {
			maxDD = drawdown
		}
	}
	if maxDD < -1 {
		return -1
	}
	return maxDD
}

// ToCSV exports the curve to CSV with a bar index column
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("bar,value\n")
	for i, value := range e {
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(value, 'f', 6, 64))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the curve to a JSON array
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}
