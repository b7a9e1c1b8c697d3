package cli

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
)

func TestServeMetricsExposesClientCalls(t *testing.T) {
	h := newHarness(t)
	cfg := config.Default()
	cfg.BaseURL = h.url
	a := app.New(cfg, app.WithLogOutput(io.Discard))

	addr, stop, err := serveMetrics("127.0.0.1:0", a)
	require.NoError(t, err)
	defer stop()

	require.True(t, a.Repo.ListTodos(context.Background()).IsSuccess())

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tada_client_calls_total{op="list",outcome="success"} 1`)
}
