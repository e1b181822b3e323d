package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DealTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_deal_transitions_total",
			Help: "Applied deal status transitions",
		},
		[]string{"from", "to"},
	)

	ConcurrentModifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_concurrent_modifications_total",
			Help: "Writes rejected because the record changed since it was read",
		},
		[]string{"op"},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_operation_errors_total",
			Help: "Failed service operations by error code",
		},
		[]string{"op", "code"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_events_published_total",
			Help: "Deal events handed to the broker",
		},
		[]string{"routing_key", "result"}, // result: ok, failed
	)

	EscalationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_escalation_emails_total",
			Help: "Overdue critical milestone escalations",
		},
		[]string{"result"}, // result: sent, duplicate, failed
	)

	// HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

func RecordTransition(from, to string) {
	DealTransitions.WithLabelValues(from, to).Inc()
}

func RecordConflict(op string) {
	ConcurrentModifications.WithLabelValues(op).Inc()
}

func RecordOperationError(op, code string) {
	OperationErrors.WithLabelValues(op, code).Inc()
}

func RecordEventPublished(routingKey string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	EventsPublished.WithLabelValues(routingKey, result).Inc()
}

func RecordEscalation(result string) {
	EscalationEmails.WithLabelValues(result).Inc()
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
