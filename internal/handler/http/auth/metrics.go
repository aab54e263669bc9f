package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	// authRequestsTotal counts token checks (authn) and logins (login) by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by kind and result",
		},
		[]string{"kind", "result"},
	)

	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration by kind",
			Buckets: []float64{0.0005, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"kind"},
	)
)

func recordAuthn(result string, start time.Time) { record("authn", result, start) }
func recordLogin(result string, start time.Time) { record("login", result, start) }

func record(kind, result string, start time.Time) {
	authRequestsTotal.WithLabelValues(kind, result).Inc()
	authDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
