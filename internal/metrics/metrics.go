// Package metrics defines the Prometheus metrics for the dealer portal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealer_portal"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Feed watcher metrics.
var (
	FeedRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_refreshes_total",
		Help:      "Total feed refresh attempts by path and result.",
	}, []string{"path", "result"})

	FeedPathUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_path_up",
		Help:      "Whether the last refresh of a feed path succeeded (1) or failed (0).",
	}, []string{"path"})
)

// Download metrics.
var (
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total file exports by entity and format.",
	}, []string{"entity", "format"})

	ConfirmationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total order confirmation documents generated.",
	})
)

// Insight metrics.
var (
	InsightRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_requests_total",
		Help:      "Total insight generations by result.",
	}, []string{"result"})
)

// ObserveFeedRefresh records one refresh attempt for a feed path.
func ObserveFeedRefresh(path string, ok bool) {
	result := "ok"
	up := 1.0
	if !ok {
		result = "error"
		up = 0
	}
	FeedRefreshesTotal.WithLabelValues(path, result).Inc()
	FeedPathUp.WithLabelValues(path).Set(up)
}
