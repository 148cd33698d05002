// Package monitoring holds the Prometheus metrics for the toolkit.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AnalysesTotal   *prometheus.CounterVec
	AnalysisScores  prometheus.Histogram
}

// NewMetrics registers the metric set with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoforge_http_requests_total",
			Help: "The total number of HTTP requests handled",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seoforge_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoforge_analyses_total",
			Help: "The total number of page analyses run",
		}, []string{"outcome"}), // 'ok', 'invalid_input', 'failed'
		AnalysisScores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "seoforge_analysis_score",
			Help:    "Distribution of computed SEO scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveAnalysis records one analysis outcome.
func (m *Metrics) ObserveAnalysis(outcome string, score int) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.AnalysisScores.Observe(float64(score))
	}
}
