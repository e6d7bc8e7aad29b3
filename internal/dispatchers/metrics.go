package dispatchers

import (
	"mpesa-gateway/internal/shared/metrics"
)

var (
	metricDispatchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "dispatched_total",
		},
		[]string{"api", "status", metrics.FieldErrorCode},
	)
)
