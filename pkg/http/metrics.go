package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubspot_http_requests_total",
			Help: "Total number of outbound HTTP requests by method, host and status class",
		},
		[]string{"method", "host", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hubspot_http_request_duration_seconds",
			Help:    "Duration of outbound HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "host"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubspot_http_retries_total",
			Help: "Total number of outbound HTTP request retries",
		},
		[]string{"method", "host"},
	)
)
