package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreWrites counts full-collection overwrites by key and outcome.
	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_store_writes_total",
		Help: "Total number of persisted-store writes",
	}, []string{"key", "outcome"})

	// StoreLoadFailures counts values that were missing a decoder match and degraded to empty.
	StoreLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_store_load_failures_total",
		Help: "Total number of persisted values that could not be decoded",
	}, []string{"key"})

	// AssistantRequests counts hosted-model calls by operation and outcome.
	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_assistant_requests_total",
		Help: "Total number of assistant requests",
	}, []string{"operation", "outcome"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// WebSocketConnections is the gauge of open re-render sockets.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
