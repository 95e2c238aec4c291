package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking_client"

// requestsTotal counts completed requests.
// Labels:
//   - op: stable operation name (e.g. "catalog.items")
//   - method: HTTP method
//   - status: numeric HTTP status code
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of gateway requests that received a response.",
	},
	[]string{"op", "method", "status"},
)

// requestErrorsTotal counts failed requests.
// Label:
//   - kind: "transport" (request never completed) or "server" (non-2xx)
var requestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of gateway requests that failed, by kind.",
	},
	[]string{"kind"},
)

// requestDuration measures round-trip time per operation.
var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Round-trip duration of gateway requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)
