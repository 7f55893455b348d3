package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alnah/go-apiclient/internal/problem"
)

// Metrics records request outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	problems *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the client metrics and registers them with reg.
// It panics if they are already registered, like promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiclient_requests_total",
				Help: "Total number of API requests by method and status code",
			},
			[]string{"method", "code"},
		),
		problems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiclient_problems_total",
				Help: "Total number of classified API problems",
			},
			[]string{"kind", "temporary"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apiclient_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// observeRequest records one attempt. code is 0 when no response arrived.
func (m *Metrics) observeRequest(method Method, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "none"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(method.String(), label).Inc()
	m.latency.WithLabelValues(method.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) observeProblem(p problem.Problem) {
	if m == nil {
		return
	}
	m.problems.WithLabelValues(p.Kind.String(), strconv.FormatBool(p.Temporary)).Inc()
}
