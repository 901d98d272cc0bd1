// Package metrics groups the Prometheus instruments for the relay.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SessionsOpened   *prometheus.CounterVec
	SessionsEnded    *prometheus.CounterVec
	RepliesRelayed   prometheus.Counter
	InferenceLatency prometheus.Histogram
}

// Session end reasons used as label values.
const (
	ReasonCancelled = "cancelled"
	ReasonTimeout   = "timeout"
	ReasonError     = "error"
	ReasonInvalid   = "invalid_input"
	ReasonDone      = "done"
)

func New(namespace string) *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Sessions opened by mode.",
		}, []string{"mode"}),
		SessionsEnded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Sessions ended by reason.",
		}, []string{"reason"}),
		RepliesRelayed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_relayed_total",
			Help:      "Model replies relayed back to users.",
		}),
		InferenceLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_latency_seconds",
			Help:      "Latency of external inference calls in seconds.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
}

func (m *Metrics) ObserveInference(d time.Duration) {
	m.InferenceLatency.Observe(d.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
