// Package metrics exposes the Prometheus collectors for the token endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TokensIssued counts successful issuances per grant type.
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token_service",
		Name:      "access_tokens_issued_total",
		Help:      "Access tokens issued, by grant type.",
	}, []string{"grant_type"})

	// RequestFailures counts failed token requests per error code.
	RequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token_service",
		Name:      "token_request_failures_total",
		Help:      "Failed token requests, by OAuth2 error code.",
	}, []string{"error"})

	// RequestDuration observes end-to-end token request latency.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "token_service",
		Name:      "token_request_duration_seconds",
		Help:      "Token request handling duration.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Handler serves the metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
