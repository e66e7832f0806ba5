package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	chatLatency prometheus.Histogram
	rateLimited *prometheus.CounterVec
}

// newMetrics uses its own registry so servers in tests do not collide.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordiz",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		chatLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordiz",
			Name:      "chat_duration_seconds",
			Help:      "Time to answer a tutor question.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordiz",
			Name:      "chat_rate_limited_total",
			Help:      "Questions rejected by the rate limiter, by window.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.chatLatency,
		m.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
