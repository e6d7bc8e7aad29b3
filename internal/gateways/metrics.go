package gateways

import (
	"mpesa-gateway/internal/shared/metrics"
)

var (
	metricCallsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGateway,
			Name:      "calls_total",
		},
		[]string{"api", "stage", metrics.FieldErrorCode},
	)

	metricCallDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGateway,
			Name:      "call_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"api"},
	)
)

// stage is where a call ended: resolving configuration, fetching the token or calling the operation.
const (
	stageConfig = "config"
	stageToken  = "token"
	stageCall   = "call"
)
