package probe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prereq_run_duration_seconds",
			Help:    "Time taken by a complete probe run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prereq_probe_duration_seconds",
			Help:    "Time taken by individual probes",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"probe"},
	)

	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prereq_probe_total",
			Help: "Probe outcomes by status",
		},
		[]string{"probe", "status"},
	)
)
