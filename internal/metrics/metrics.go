// Package metrics holds the Prometheus collectors of the handoff service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	AttestationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_attestations_total",
			Help: "Attestations and unavailability reports by side and resulting outcome",
		},
		[]string{"side", "outcome"},
	)

	ShipmentEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_shipment_events_total",
			Help: "Shipment status signals by event type and publish result",
		},
		[]string{"event_type", "result"},
	)

	SweepRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_sweep_records_total",
			Help: "Records handled by the scheduled sweeps",
		},
		[]string{"sweep", "result"},
	)

	SweepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handoff_sweep_duration_seconds",
			Help:    "Duration of one sweep pass",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sweep"},
	)

	DispatchMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_dispatch_messages_total",
			Help: "Shipment leg dispatch messages consumed by result",
		},
		[]string{"result"},
	)
)

// Register registers all collectors with the default registry. Call it once from main.
func Register() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AttestationsTotal)
	prometheus.MustRegister(ShipmentEventsTotal)
	prometheus.MustRegister(SweepRecordsTotal)
	prometheus.MustRegister(SweepDuration)
	prometheus.MustRegister(DispatchMessagesTotal)
}
