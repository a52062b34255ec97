package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_active_connections",
		Help: "Active websocket connections",
	})
	RelayedMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_relayed_messages_total",
		Help: "Chat messages accepted from clients and relayed to their room",
	})
	DeliveryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_delivery_failures_total",
		Help: "Per-recipient send failures during unicast or broadcast",
	})
)

func Register() {
	prometheus.MustRegister(ActiveConnections, RelayedMessages, DeliveryFailures)
}
