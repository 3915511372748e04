package managers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	vendorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alloybridge_vendor_requests_total",
			Help: "RunAlloy action executions by connector, action and outcome",
		},
		[]string{"connector", "action", "outcome"},
	)

	vendorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alloybridge_vendor_request_duration_seconds",
			Help:    "Latency of RunAlloy action executions",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"connector", "action"},
	)

	credentialCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alloybridge_credential_cache_lookups_total",
			Help: "Credential cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)
)

func recordVendorRequest(connector, action, outcome string, elapsed time.Duration) {
	vendorRequests.WithLabelValues(connector, action, outcome).Inc()
	vendorRequestDuration.WithLabelValues(connector, action).Observe(elapsed.Seconds())
}

func recordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	credentialCacheLookups.WithLabelValues(result).Inc()
}
