// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests issued to the backend",
		},
		[]string{"operation"},
	)

	BackendRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_request_failures_total",
			Help: "Total number of failed backend requests",
		},
		[]string{"operation", "error_code"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backend_request_duration_seconds",
			Help: "Duration of backend requests in seconds",
		},
		[]string{"operation"},
	)

	DashboardActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_actions_total",
			Help: "User-facing component actions by outcome",
		},
		[]string{"component", "action", "outcome"},
	)
)
