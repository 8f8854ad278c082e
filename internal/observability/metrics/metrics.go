package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics exposes counters/histograms for outbound clinic API calls.
type APIMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicapp",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total clinic API requests",
		}, []string{"resource", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicapp",
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

// ObserveRequest records one completed request. status 0 means the request
// never produced a response (transport failure).
func (m *APIMetrics) ObserveRequest(resource, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(resource, method, label).Inc()
	m.requestLatency.WithLabelValues(resource, method).Observe(seconds)
}
