package process

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// droppedRecordsTotal counts records skipped during normalization.
	droppedRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_dropped_records_total",
		Help: "Records skipped during normalization by kind and reason",
	}, []string{"kind", "reason"})

	// normalizedRecordsTotal counts records that passed normalization.
	normalizedRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_normalized_records_total",
		Help: "Records that passed normalization by kind",
	}, []string{"kind"})
)
