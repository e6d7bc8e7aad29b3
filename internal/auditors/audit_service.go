package auditors

import (
	"context"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/shared/metrics"
	"mpesa-gateway/internal/shared/svcerrors"
	"mpesa-gateway/internal/stores"
)

// AuditService records REQUEST and RESPONSE entries submitted by callers and
// serves the recent-transactions view of the log.
//
//go:generate mockgen -source=audit_service.go -destination=./mocks/audit_service_mock.go -package=mocks
type AuditService interface {
	// LogRequest stores a REQUEST entry; api and requestPayload are required.
	LogRequest(ctx context.Context, body []byte) (*models.LogEntry, error)
	// LogResponse stores a RESPONSE entry; api and responsePayload are required.
	LogResponse(ctx context.Context, body []byte) (*models.LogEntry, error)
	// RecentTransactions projects the most recent RESPONSE entries, newest first.
	RecentTransactions(ctx context.Context, limit int) ([]models.TransactionSummary, error)
}

type auditService struct {
	auditLogStore stores.AuditLogStore
}

func NewAuditService(auditLogStore stores.AuditLogStore) AuditService {
	return &auditService{
		auditLogStore: auditLogStore,
	}
}

func (s *auditService) LogRequest(ctx context.Context, body []byte) (*models.LogEntry, error) {
	var payload models.RequestLogPayload
	if err := models.DecodeShape(body, &payload); err != nil {
		return nil, s.fail(models.LogKindRequest, errFromPayload(err))
	}

	requestPayload, err := models.RawJSON(payload.RequestPayload)
	if err != nil {
		return nil, s.fail(models.LogKindRequest, errInternalPayloadDecodeFailed(err))
	}

	return s.append(ctx, &models.LogEntry{
		Kind:             models.LogKindRequest,
		API:              *payload.API,
		Reference:        payload.Reference,
		TransactionID:    payload.TransactionID,
		PaymentRequestID: payload.PaymentRequestID,
		RequestPayload:   requestPayload,
	})
}

func (s *auditService) LogResponse(ctx context.Context, body []byte) (*models.LogEntry, error) {
	var payload models.ResponseLogPayload
	if err := models.DecodeShape(body, &payload); err != nil {
		return nil, s.fail(models.LogKindResponse, errFromPayload(err))
	}

	requestPayload, err := models.RawJSON(payload.RequestPayload)
	if err != nil {
		return nil, s.fail(models.LogKindResponse, errInternalPayloadDecodeFailed(err))
	}
	responsePayload, err := models.RawJSON(payload.ResponsePayload)
	if err != nil {
		return nil, s.fail(models.LogKindResponse, errInternalPayloadDecodeFailed(err))
	}

	entry := &models.LogEntry{
		Kind:             models.LogKindResponse,
		API:              *payload.API,
		Reference:        payload.Reference,
		TransactionID:    payload.TransactionID,
		PaymentRequestID: payload.PaymentRequestID,
		StatusCode:       payload.StatusCode,
		RequestPayload:   requestPayload,
		ResponsePayload:  responsePayload,
	}
	if payload.Status != nil {
		entry.Status = models.LogStatus(*payload.Status)
	}

	return s.append(ctx, entry)
}

func (s *auditService) RecentTransactions(ctx context.Context, limit int) ([]models.TransactionSummary, error) {
	entries, err := s.auditLogStore.RecentResponses(ctx, stores.ClampRecentLimit(limit))
	if err != nil {
		return nil, errInternalAuditLogStoreFailed(err)
	}

	summaries := make([]models.TransactionSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, models.NewTransactionSummary(entry))
	}
	return summaries, nil
}

func (s *auditService) append(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	stored, err := s.auditLogStore.Append(ctx, entry)
	if err != nil {
		return nil, s.fail(entry.Kind, errInternalAuditLogStoreFailed(err))
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldLogKind, string(stored.Kind)).
		Str(loggers.FieldAPI, stored.API).
		Msgf("recorded audit entry %s", stored.ID)
	metricEntriesRecordedTotal.WithLabelValues(string(stored.Kind), metrics.ValueNoError).Inc()
	return stored, nil
}

func (s *auditService) fail(kind models.LogKind, svcErr *svcerrors.ServiceError) error {
	metricEntriesRecordedTotal.WithLabelValues(string(kind), svcErr.Code).Inc()
	return svcErr
}
