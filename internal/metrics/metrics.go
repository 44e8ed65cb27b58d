package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "authui"
)

var (
	upstreamDurationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

	// Login Metrics
	LoginSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_submissions_total",
		Help:      "Count of login form submissions by outcome.",
	}, []string{"outcome"})

	LoginSubmissionsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "login_submissions_in_flight",
		Help:      "Number of login submissions waiting on the authentication backend.",
	})

	LoginUpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_upstream_duration_seconds",
		Help:      "Round trip time of login requests to the authentication backend.",
		Buckets:   upstreamDurationBuckets,
	})

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests served.",
	}, []string{"method", "route", "status"})
)
