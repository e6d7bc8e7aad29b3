package dispatchers

import (
	"context"
	"errors"
	"net/http"

	"mpesa-gateway/internal/gateways"
	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/shared/metrics"
	"mpesa-gateway/internal/shared/svcerrors"
	"mpesa-gateway/internal/stores"
)

//go:generate mockgen -source=dispatch_service.go -destination=./mocks/dispatch_service_mock.go -package=mocks
type DispatchService interface {
	// Dispatch validates body for op, records a REQUEST entry, forwards the body to Daraja
	// and records the outcome as a RESPONSE entry. It returns the provider response unchanged.
	Dispatch(ctx context.Context, op models.Operation, body []byte) (any, error)
}

type dispatchService struct {
	gatewayClient gateways.GatewayClient
	auditLogStore stores.AuditLogStore
}

func NewDispatchService(gatewayClient gateways.GatewayClient, auditLogStore stores.AuditLogStore) DispatchService {
	return &dispatchService{
		gatewayClient: gatewayClient,
		auditLogStore: auditLogStore,
	}
}

func (s *dispatchService) Dispatch(ctx context.Context, op models.Operation, body []byte) (any, error) {
	if !op.IsValid() {
		return nil, errUnknownOperation(op)
	}

	request, err := models.NewOperationRequest(op, body)
	if err != nil {
		svcErr := errFromPayload(err)
		metricDispatchedTotal.WithLabelValues(string(op), string(models.LogStatusFailed), svcErr.Code).Inc()
		return nil, svcErr
	}

	reference := request.Body.Reference()
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldAPI, string(op)).Logger()
	if reference != nil {
		logger = logger.With().Str(loggers.FieldReference, *reference).Logger()
	}
	logger.Debug().Msg("dispatching daraja request")

	_, err = s.auditLogStore.Append(ctx, &models.LogEntry{
		Kind:           models.LogKindRequest,
		API:            string(op),
		Reference:      reference,
		RequestPayload: request.Body,
	})
	if err != nil {
		return nil, s.internalFailure(op, errInternalAuditLogStoreFailed(err))
	}

	result, callErr := s.gatewayClient.Call(ctx, op, request.Body, nil)
	if callErr != nil {
		return nil, s.recordFailure(ctx, op, reference, request.Body, callErr)
	}

	_, err = s.auditLogStore.Append(ctx, &models.LogEntry{
		Kind:            models.LogKindResponse,
		API:             string(op),
		Reference:       reference,
		StatusCode:      intPtr(http.StatusOK),
		Status:          models.LogStatusSuccess,
		RequestPayload:  request.Body,
		ResponsePayload: result,
	})
	if err != nil {
		return nil, s.internalFailure(op, errInternalAuditLogStoreFailed(err))
	}

	metricDispatchedTotal.WithLabelValues(string(op), string(models.LogStatusSuccess), metrics.ValueNoError).Inc()
	return result, nil
}

// recordFailure writes the FAILED RESPONSE entry for callErr and returns the error to surface.
// When that write fails too, both causes are kept.
func (s *dispatchService) recordFailure(ctx context.Context, op models.Operation, reference *string, body models.Payload, callErr error) error {
	statusCode := http.StatusInternalServerError
	message := callErr.Error()
	errorCode := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(callErr); ok {
		statusCode = svcErr.HttpStatusCode
		message = svcErr.Message
		errorCode = svcErr.Code
	}

	_, err := s.auditLogStore.Append(ctx, &models.LogEntry{
		Kind:            models.LogKindResponse,
		API:             string(op),
		Reference:       reference,
		StatusCode:      intPtr(statusCode),
		Status:          models.LogStatusFailed,
		RequestPayload:  body,
		ResponsePayload: map[string]any{"error": message},
	})
	if err != nil {
		return s.internalFailure(op, errInternalAuditLogStoreFailed(errors.Join(callErr, err)))
	}

	metricDispatchedTotal.WithLabelValues(string(op), string(models.LogStatusFailed), errorCode).Inc()
	return callErr
}

func (s *dispatchService) internalFailure(op models.Operation, svcErr *svcerrors.ServiceError) error {
	metricDispatchedTotal.WithLabelValues(string(op), string(models.LogStatusFailed), svcErr.Code).Inc()
	return svcErr
}

func intPtr(i int) *int {
	return &i
}
