package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Auth flow
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // ok|not_found|bad_password|error
	)
	TokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_refresh_total",
			Help: "Refresh-token exchanges by outcome",
		},
		[]string{"outcome"}, // ok|invalid|error
	)
	GuardRotationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_access_rotations_total",
			Help: "Access tokens transparently rotated by the guard",
		},
	)

	// Listings
	HotelsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hotels_created_total",
			Help: "Hotels created",
		},
	)

	// Audit worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(TokenRefreshTotal)
	prometheus.MustRegister(GuardRotationsTotal)
	prometheus.MustRegister(HotelsCreatedTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
