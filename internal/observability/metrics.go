// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts dispatched GraphQL operations by name and outcome code.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedgraph_operations_total",
		Help: "Total number of dispatched operations by name and outcome",
	}, []string{"operation", "outcome"})

	// OperationDuration records resolver latency by operation name.
	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedgraph_operation_duration_seconds",
		Help:    "Operation resolution latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// StitchBatchSize records how many keys each batched relation lookup carried.
	StitchBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedgraph_stitch_batch_keys",
		Help:    "Number of distinct keys per batched relation lookup",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"relation"})

	// FeedEventsPublished counts feed events handed to Redis by type and result.
	FeedEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedgraph_feed_events_published_total",
		Help: "Total feed events published by type and result",
	}, []string{"type", "result"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedgraph_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// ObserveOperation records the outcome and latency of one dispatched operation.
func ObserveOperation(operation, outcome string, start time.Time) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
