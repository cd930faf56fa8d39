package app

import "github.com/prometheus/client_golang/prometheus"

var (
	signalConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signal_connections",
			Help: "Current number of attached signaling connections.",
		},
	)
	signalRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signal_rooms",
			Help: "Current number of rooms with at least one member.",
		},
	)
	signalDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_messages_delivered_total",
			Help: "Total outbound messages handed to connection buffers.",
		},
	)
	signalDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_sends_dropped_total",
			Help: "Total outbound messages dropped on closed or backpressured connections.",
		},
	)
	signalJoins = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_joins_total",
			Help: "Total successful join operations.",
		},
	)
	signalLeaves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_leaves_total",
			Help: "Total leave operations, explicit or by disconnect.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		signalConnections,
		signalRooms,
		signalDelivered,
		signalDropped,
		signalJoins,
		signalLeaves,
	)
}

func incConnections() { signalConnections.Inc() }
func decConnections() { signalConnections.Dec() }

func setRooms(count int) { signalRooms.Set(float64(count)) }

func incDelivered() { signalDelivered.Inc() }
func incDropped()   { signalDropped.Inc() }
func incJoins()     { signalJoins.Inc() }
func incLeaves()    { signalLeaves.Inc() }
