package backtest

import "github.com/yourusername/signal-bench/internal/models"

// Backend names in preference order
const (
	BackendOrderDriven = "order_driven"
	BackendVectorized  = "vectorized"
	BackendBuiltin     = "builtin"
)

// Backend is one of several interchangeable computation strategies capable of
// producing a BacktestResult from the same inputs. Implementations are pure:
// no shared mutable state, safe to run in isolated workers.
type Backend interface {
	Name() string
	Run(req models.BacktestRequest) (*models.BacktestResult, error)
}

// Capabilities is the registry of optional backends, detected once at
// process start and injected into the dispatcher. Selection over it is a
// pure function; availability never changes mid-call.
type Capabilities struct {
	OrderDriven bool
	Vectorized  bool
}

// DetectCapabilities builds the capability registry from startup
// configuration
func DetectCapabilities(orderDriven, vectorized bool) Capabilities {
	return Capabilities{OrderDriven: orderDriven, Vectorized: vectorized}
}

// Select picks exactly one backend name: the order-driven engine when
// present, else the vectorized portfolio engine, else the built-in
// simulator, which is always available.
func (c Capabilities) Select() string {
	if c.OrderDriven {
		return BackendOrderDriven
	}
	if c.Vectorized {
		return BackendVectorized
	}
	return BackendBuiltin
}
