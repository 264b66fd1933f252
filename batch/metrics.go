package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvsscalc",
			Subsystem: "batch",
			Name:      "rows_total",
			Help:      "Total number of data rows handled, by outcome.",
		},
		[]string{"outcome"},
	)
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cvsscalc",
			Subsystem: "batch",
			Name:      "run_duration_seconds",
			Help:      "The duration of whole batch runs.",
		},
	)
)
