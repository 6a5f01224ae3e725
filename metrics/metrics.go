package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OpenConnections tracks websocket connections currently registered.
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_open_connections",
		Help: "Number of open websocket connections.",
	})

	// EventsTotal counts inbound client events by event name.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_events_total",
		Help: "Inbound client events received, by event name.",
	}, []string{"event"})

	// DroppedSends counts outbound frames discarded because a client's
	// send buffer was full or its connection already closed.
	DroppedSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_dropped_sends_total",
		Help: "Outbound frames dropped due to slow or closed clients.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
