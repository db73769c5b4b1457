// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	SubmissionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_accepted_total",
			Help: "Total number of contact submissions persisted",
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_rejected_total",
			Help: "Total number of contact submissions rejected by error code",
		},
		[]string{"error_code"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Notification send attempts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	CatalogQueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_failed_total",
			Help: "Catalog lookups that failed against the store",
		},
		[]string{"catalog"},
	)
)
