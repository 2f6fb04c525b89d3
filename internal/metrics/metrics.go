package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oneshot"

// Metrics counts what happens to connections. A nil *Metrics is valid and records nothing.
type Metrics struct {
	connections  prometheus.Counter
	connErrors   prometheus.Counter
	requests     *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
}

// New creates the counters and registers them. It panics if they are already registered
// at reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total accepted connections.",
		}),
		connErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connection_errors_total",
			Help:      "Connections terminated by an I/O or routing failure.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests answered with a response.",
			},
			[]string{"method", "status"},
		),
		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_errors_total",
				Help:      "Requests that failed to decode.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(m.connections, m.connErrors, m.requests, m.decodeErrors)

	return m
}

func (m *Metrics) Connection() {
	if m != nil {
		m.connections.Inc()
	}
}

func (m *Metrics) ConnectionError() {
	if m != nil {
		m.connErrors.Inc()
	}
}

func (m *Metrics) Request(method, status string) {
	if m != nil {
		m.requests.WithLabelValues(method, status).Inc()
	}
}

func (m *Metrics) DecodeError(kind string) {
	if m != nil {
		m.decodeErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ConnectionsCounter() prometheus.Counter {
	return m.connections
}

func (m *Metrics) ConnectionErrorsCounter() prometheus.Counter {
	return m.connErrors
}

func (m *Metrics) RequestsCounter(method, status string) prometheus.Counter {
	return m.requests.WithLabelValues(method, status)
}

func (m *Metrics) DecodeErrorsCounter(kind string) prometheus.Counter {
	return m.decodeErrors.WithLabelValues(kind)
}

// Handler exposes the gathered metrics in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
