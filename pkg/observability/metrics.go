// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the edenai-apis server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// VendorBuckets defines histogram buckets suited for vendor API
// latencies, ranging from 50ms to 120s (document parsing and
// transcription polls sit at the long end).
var VendorBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, status class, and subfeature.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edenai_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "subfeature"},
	)

	// RequestDuration records HTTP request duration in seconds by method and subfeature.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edenai_request_duration_seconds",
			Help:    "Request duration",
			Buckets: VendorBuckets,
		},
		[]string{"method", "subfeature"},
	)

	// VendorRequestsTotal counts calls dispatched to vendor APIs.
	VendorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edenai_vendor_requests_total",
			Help: "Vendor requests",
		},
		[]string{"provider", "feature", "subfeature", "status"},
	)

	// VendorLatency records vendor API latency in seconds.
	VendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edenai_vendor_latency_seconds",
			Help:    "Vendor latency",
			Buckets: VendorBuckets,
		},
		[]string{"provider", "feature", "subfeature"},
	)

	// AsyncJobsActive tracks vendor jobs launched but not yet terminal.
	AsyncJobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edenai_async_jobs_active",
			Help: "Active async jobs",
		},
	)

	// UploadsTotal counts files hosted for vendors by outcome.
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edenai_uploads_total",
			Help: "File uploads",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		VendorRequestsTotal,
		VendorLatency,
		AsyncJobsActive,
		UploadsTotal,
	)
}

// ObserveVendorCall records one vendor API call. status is "ok" or
// "error".
func ObserveVendorCall(provider, feature, subfeature string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	VendorRequestsTotal.WithLabelValues(provider, feature, subfeature, status).Inc()
	VendorLatency.WithLabelValues(provider, feature, subfeature).Observe(seconds)
}
