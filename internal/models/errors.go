package models

import "errors"

// Custom errors
var (
	ErrInsufficientData      = errors.New("price series must contain at least 2 bars")
	ErrSeriesLengthMismatch  = errors.New("signal series length must match price series length")
	ErrUnorderedSeries       = errors.New("price series timestamps must be strictly increasing")
	ErrNonPositiveCapital    = errors.New("initial capital must be positive")
	ErrNegativeCostRate      = errors.New("commission and slippage rates cannot be negative")
	ErrNegativeAnnualization = errors.New("annualization periods cannot be negative")
	ErrEmptyStrategyName     = errors.New("strategy name is required")
)
