package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Finished job statuses
const (
	StatusSuccess    = "success"
	StatusFailure    = "failure"
	StatusSpawnError = "spawn_error"
)

// Queue metrics
var (
	QueuePending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "avweb_queue_pending",
			Help: "Number of jobs waiting for a transcoder slot",
		},
	)

	QueueRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "avweb_queue_running",
			Help: "Number of transcoder processes currently running",
		},
	)

	JobsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avweb_jobs_submitted_total",
			Help: "Total number of jobs accepted by the queue",
		},
	)

	JobsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avweb_jobs_rejected_total",
			Help: "Total number of malformed jobs refused at submission",
		},
	)
)

// Transcoder metrics
var (
	JobsFinishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avweb_jobs_finished_total",
			Help: "Total number of finished transcoder processes",
		},
		[]string{"status"},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "avweb_job_duration_seconds",
			Help:    "Transcoder process wall time in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)
)
