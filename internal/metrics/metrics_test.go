package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, first, GetRegistry())
}

func TestRecordersDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordBacktestRun("builtin", "completed")
		RecordBacktestRun("order_driven", "failed")
		ObserveBacktestDuration(0.042)
		RecordBatch(10, 0.5)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordBacktestRun("builtin", "completed")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(recorder, request)

	require.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "signal_bench_backtest_runs_total")
}
