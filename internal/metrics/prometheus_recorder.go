package metrics

import (
	"fmt"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	calls    *prom.CounterVec
	duration *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		calls: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tada",
			Subsystem: "client",
			Name:      "calls_total",
			Help:      "Remote todo API calls by operation and outcome",
		}, []string{"op", "outcome"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "tada",
			Subsystem: "client",
			Name:      "call_duration_seconds",
			Help:      "Latency of remote todo API calls",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(pr.calls, pr.duration)
	return pr
}

func (p *PrometheusRecorder) ObserveCall(op, outcome string, d time.Duration) {
	p.calls.WithLabelValues(op, outcome).Inc()
	p.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Calls exposes the call counter, mainly for tests.
func (p *PrometheusRecorder) Calls() *prom.CounterVec { return p.calls }

// CallCount is one op and outcome cell of the call counter.
type CallCount struct {
	Op      string
	Outcome string
	Count   uint64
}

const callsMetric = "tada_client_calls_total"

// CallCounts reads the call counter from g. Gather already orders the
// cells by label values.
func CallCounts(g prom.Gatherer) ([]CallCount, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}
	var out []CallCount
	for _, mf := range families {
		if mf.GetName() != callsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			c := CallCount{Count: uint64(m.GetCounter().GetValue())}
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "op":
					c.Op = l.GetValue()
				case "outcome":
					c.Outcome = l.GetValue()
				}
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
