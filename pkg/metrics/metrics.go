package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsReceivedTotal counts submitted events pulled off the events subject.
	EventsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_received_total",
			Help: "Total number of submitted events pulled from the broker.",
		},
		[]string{"event_type"},
	)

	// EventsProcessedTotal counts events that were enriched and published downstream.
	EventsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_processed_total",
			Help: "Total number of events successfully enriched and published.",
		},
		[]string{"event_type"},
	)

	// EventsFailedTotal counts events dropped for a given reason (e.g. validation).
	EventsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_failed_total",
			Help: "Total number of events that failed processing, by reason.",
		},
		[]string{"event_type", "reason"},
	)

	// DuplicatesTotal counts events recognized as duplicates within the dedup window.
	DuplicatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duplicates_total",
			Help: "Total number of duplicate events dropped by the dedup check.",
		},
		[]string{"event_type"},
	)

	// DeliveriesTotal counts terminal delivery outcomes (delivered, or
	// failed after the retry budget); retried attempts are not counted.
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of terminal delivery outcomes, by channel and status.",
		},
		[]string{"channel", "status"},
	)

	// DeliveryDurationSeconds observes transport call latency per channel.
	DeliveryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "delivery_duration_seconds",
			Help:    "Transport adapter call duration in seconds, by channel.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"channel"},
	)

	// ActiveWebsocketConnections tracks real-time fan-out connections (owned
	// by the external collaborator; the core registers the gauge but never
	// changes its value).
	ActiveWebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_websocket_connections",
			Help: "Current number of active real-time notification connections.",
		},
	)

	// DBQueryDuration observes relational store query latency.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// MQConsumeLatency observes broker message consumption latency.
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "Broker message consumption latency in milliseconds.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
		[]string{"routing_key", "queue"},
	)
)

// RecordMQConsumeLatency records broker consume latency for a routing key/queue pair.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordDBQueryDuration records relational store query latency.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDeliveryDuration records transport adapter latency for a channel.
func RecordDeliveryDuration(channel string, duration time.Duration) {
	DeliveryDurationSeconds.WithLabelValues(channel).Observe(duration.Seconds())
}

// IncrementSlowQuery records a slow-query observation against the db
// query histogram under a synthetic "slow_query" operation label so it
// shows up alongside normal query timings without a second metric.
func IncrementSlowQuery(sql string, duration time.Duration) {
	DBQueryDuration.WithLabelValues("slow_query", "unknown").Observe(duration.Seconds())
}

// IncrementEventsReceived records an event pulled off the broker.
func IncrementEventsReceived(eventType string) {
	EventsReceivedTotal.WithLabelValues(eventType).Inc()
}

// IncrementEventsProcessed records a successfully enriched event.
func IncrementEventsProcessed(eventType string) {
	EventsProcessedTotal.WithLabelValues(eventType).Inc()
}

// IncrementEventsFailed records a dropped event with its failure reason.
func IncrementEventsFailed(eventType, reason string) {
	EventsFailedTotal.WithLabelValues(eventType, reason).Inc()
}

// IncrementDuplicates records a dedup hit.
func IncrementDuplicates(eventType string) {
	DuplicatesTotal.WithLabelValues(eventType).Inc()
}

// IncrementDeliveries records a terminal delivery outcome for a channel.
func IncrementDeliveries(channel, status string) {
	DeliveriesTotal.WithLabelValues(channel, status).Inc()
}
