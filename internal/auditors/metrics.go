package auditors

import (
	"mpesa-gateway/internal/shared/metrics"
)

var (
	metricEntriesRecordedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAudit,
			Name:      "entries_recorded_total",
		},
		[]string{"kind", metrics.FieldErrorCode},
	)
)
