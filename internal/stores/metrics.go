package stores

import (
	"mpesa-gateway/internal/shared/metrics"
)

var (
	metricRecordsAppendedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAudit,
			Name:      "records_appended_total",
		},
		[]string{"backend", "kind"},
	)
)

const (
	backendFile     = "file"
	backendPostgres = "postgres"

	kindCallbackLog = "CALLBACK_LOG"
)
