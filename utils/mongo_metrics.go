package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/event"
)

var (
	mongoConnectionsCheckedOut = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_connections_checked_out",
		Help: "Connections currently checked out of the MongoDB pool",
	})
	mongoConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_connections_open",
		Help: "Connections currently open in the MongoDB pool",
	})
)

// NewPoolMonitor mirrors MongoDB connection pool events into gauges.
func NewPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				mongoConnectionsOpen.Inc()
			case event.ConnectionClosed:
				mongoConnectionsOpen.Dec()
			case event.GetSucceeded:
				mongoConnectionsCheckedOut.Inc()
			case event.ConnectionReturned:
				mongoConnectionsCheckedOut.Dec()
			}
		},
	}
}
