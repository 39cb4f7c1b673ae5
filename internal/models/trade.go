package models

// Position represents the single open long position during a simulation
type Position struct {
	EntryPrice float64 `json:"entry_price"`
	Size       float64 `json:"size"`
	EntryIndex int     `json:"entry_index"`
}

// Trade is the immutable record of a completed entry+exit pair.
// Profit is the realized exit notional minus the entry notional, net of costs.
type Trade struct {
	EntryIndex int     `json:"entry_index"`
	ExitIndex  int     `json:"exit_index"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	Size       float64 `json:"size"`
	Profit     float64 `json:"profit"`
}

// IsWin reports whether the trade realized a positive profit
func (t Trade) IsWin() bool {
	return t.Profit > 0
}
