package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wirecall"

// Metrics holds relay collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	connections     prometheus.Gauge
	rooms           prometheus.Gauge
	chatMessages    prometheus.Counter
	signals         prometheus.Counter
	droppedEvents   prometheus.Counter
	sessionDuration prometheus.Histogram
}

// New registers relay collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Currently connected clients.",
		}),
		rooms: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Rooms with at least one member.",
		}),
		chatMessages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages stored and broadcast.",
		}),
		signals: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Signaling payloads relayed.",
		}),
		droppedEvents: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_events_total",
			Help:      "Outbound events dropped because a client queue was full.",
		}),
		sessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Time between connect and disconnect.",
			Buckets:   []float64{1, 10, 60, 300, 900, 1800, 3600, 7200, 14400},
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ConnectionOpened counts a newly registered connection.
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

// ConnectionClosed records a disconnect and how long the connection was online.
func (m *Metrics) ConnectionClosed(online time.Duration) {
	if m == nil {
		return
	}
	m.connections.Dec()
	m.sessionDuration.Observe(online.Seconds())
}

// SetRooms sets the number of live rooms.
func (m *Metrics) SetRooms(n int) {
	if m == nil {
		return
	}
	m.rooms.Set(float64(n))
}

// ChatRelayed counts a chat message stored and fanned out to a room.
func (m *Metrics) ChatRelayed() {
	if m == nil {
		return
	}
	m.chatMessages.Inc()
}

// SignalRelayed counts a signaling payload forwarded to its target.
func (m *Metrics) SignalRelayed() {
	if m == nil {
		return
	}
	m.signals.Inc()
}

// EventDropped counts an event discarded because a client queue was full.
func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.droppedEvents.Inc()
}
