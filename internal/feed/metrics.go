// internal/feed/metrics.go
package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Total number of feed page requests",
	})

	feedItemsServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_items_served_total",
		Help: "Total feed items served, by content type",
	}, []string{"content_type"})

	feedViewCountFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_view_count_failures_total",
		Help: "View-count increments that failed and were swallowed",
	})

	feedInteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_interactions_total",
		Help: "Recorded feed interactions, by type",
	}, []string{"type"})
)
