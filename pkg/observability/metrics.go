// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the bote relay.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bote_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bote_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequestsTotal counts requests sent to the upstream LLM backend.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bote_upstream_requests_total",
			Help: "Upstream requests",
		},
		[]string{"provider", "model", "status"},
	)

	// UpstreamLatency records upstream call latency in seconds.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bote_upstream_latency_seconds",
			Help:    "Upstream latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// UpstreamTokensTotal counts tokens processed by direction (input/output).
	UpstreamTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bote_upstream_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "model", "direction"},
	)

	// TokenExchangesTotal counts service-account token exchanges by outcome.
	TokenExchangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bote_token_exchanges_total",
			Help: "Service account token exchanges",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UpstreamRequestsTotal,
		UpstreamLatency,
		UpstreamTokensTotal,
		TokenExchangesTotal,
	)
}

// RecordUpstream records the outcome of a single upstream call.
func RecordUpstream(provider, model, status string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(provider, model, status).Inc()
	UpstreamLatency.WithLabelValues(provider, model).Observe(seconds)
}

// RecordTokens records token usage for a completed upstream call.
func RecordTokens(provider, model string, input, output int) {
	if input > 0 {
		UpstreamTokensTotal.WithLabelValues(provider, model, "input").Add(float64(input))
	}
	if output > 0 {
		UpstreamTokensTotal.WithLabelValues(provider, model, "output").Add(float64(output))
	}
}
