package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caulong_http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "caulong_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caulong_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caulong_sessions_created_total",
		Help: "Sessions created through the API.",
	})

	playersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caulong_players_created_total",
		Help: "Roster players created through the API.",
	})
)
