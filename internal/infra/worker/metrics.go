package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobRunsTotal counts scheduled job runs by job and status (success/failure).
	jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_job_runs_total",
		Help: "Total number of scheduled job runs by job and status",
	}, []string{"job", "status"})

	jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worker_job_duration_seconds",
		Help:    "Duration of scheduled job runs in seconds",
		Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
	}, []string{"job"})

	jobLastSuccessTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worker_job_last_success_timestamp",
		Help: "Unix timestamp of the last successful run per job",
	}, []string{"job"})
)

func recordRun(job string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	jobRunsTotal.WithLabelValues(job, status).Inc()
	jobDurationSeconds.WithLabelValues(job).Observe(d.Seconds())
	if err == nil {
		jobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
	}
}
