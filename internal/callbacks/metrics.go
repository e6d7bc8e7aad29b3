package callbacks

import (
	"mpesa-gateway/internal/shared/metrics"
)

var (
	metricCallbackReceivedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCallback,
			Name:      "received_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
