package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveCall("list", OutcomeSuccess, 20*time.Millisecond)
	pr.ObserveCall("list", OutcomeSuccess, 30*time.Millisecond)
	pr.ObserveCall("get", "not_found", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.Calls().WithLabelValues("list", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.Calls().WithLabelValues("get", "not_found")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 2)
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).ObserveCall("delete", OutcomeSuccess, time.Millisecond)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tada_client_calls_total")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() { r.ObserveCall("list", OutcomeSuccess, time.Second) })
}

func TestCallCounts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveCall("list", OutcomeSuccess, time.Millisecond)
	pr.ObserveCall("list", OutcomeSuccess, time.Millisecond)
	pr.ObserveCall("get", "not_found", time.Millisecond)

	got, err := CallCounts(reg)
	require.NoError(t, err)
	assert.Equal(t, []CallCount{
		{Op: "get", Outcome: "not_found", Count: 1},
		{Op: "list", Outcome: OutcomeSuccess, Count: 2},
	}, got)

	empty, err := CallCounts(prom.NewRegistry())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
