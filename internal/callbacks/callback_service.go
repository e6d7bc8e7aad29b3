package callbacks

import (
	"context"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/shared/metrics"
	"mpesa-gateway/internal/shared/svcerrors"
	"mpesa-gateway/internal/stores"
)

//go:generate mockgen -source=callback_service.go -destination=./mocks/callback_service_mock.go -package=mocks
type CallbackService interface {
	// Receive authenticates a provider callback against the raw request body and, when the
	// signature matches, stores it as a CallbackLog plus a CALLBACK audit entry.
	Receive(ctx context.Context, signature string, body []byte) (*models.CallbackRecord, error)
}

type callbackService struct {
	secret           string
	callbackLogStore stores.CallbackLogStore
	auditLogStore    stores.AuditLogStore
}

func NewCallbackService(secret string, callbackLogStore stores.CallbackLogStore, auditLogStore stores.AuditLogStore) CallbackService {
	return &callbackService{
		secret:           secret,
		callbackLogStore: callbackLogStore,
		auditLogStore:    auditLogStore,
	}
}

func (s *callbackService) Receive(ctx context.Context, signature string, body []byte) (*models.CallbackRecord, error) {
	logger := loggers.Ctx(ctx)

	if s.secret == "" {
		return nil, s.fail(errSecretMissing())
	}
	if signature == "" {
		return nil, s.fail(errSignatureMissing())
	}
	if !VerifySignature(s.secret, signature, body) {
		logger.Warn().Msg("rejected callback with invalid signature")
		return nil, s.fail(errSignatureInvalid())
	}

	var callback models.CallbackPayload
	if err := models.DecodeShape(body, &callback); err != nil {
		return nil, s.fail(errFromPayload(err))
	}
	payload, err := models.RawJSON(callback.Payload)
	if err != nil {
		return nil, s.fail(errInternalPayloadDecodeFailed(err))
	}

	callbackLog, err := s.callbackLogStore.AppendCallback(ctx, &models.CallbackLog{
		EventType:        callback.EventType,
		Payload:          payload,
		TransactionID:    callback.TransactionID,
		PaymentRequestID: callback.PaymentRequestID,
	})
	if err != nil {
		return nil, s.fail(errInternalCallbackLogStoreFailed(err))
	}

	entry := &models.LogEntry{
		Kind:             models.LogKindCallback,
		Reference:        callback.Reference,
		TransactionID:    callback.TransactionID,
		PaymentRequestID: callback.PaymentRequestID,
		StatusCode:       callback.StatusCode,
		ResponsePayload:  payload,
	}
	if callback.API != nil {
		entry.API = *callback.API
	}
	if callback.Status != nil {
		entry.Status = models.LogStatus(*callback.Status)
	}

	mpesaLog, err := s.auditLogStore.Append(ctx, entry)
	if err != nil {
		// the callback log is already stored and stays; the caller sees a 500 and may retry
		return nil, s.fail(errInternalAuditLogStoreFailed(err))
	}

	logger.Info().
		Str(loggers.FieldAPI, mpesaLog.API).
		Msgf("stored callback %s", callbackLog.ID)
	metricCallbackReceivedTotal.WithLabelValues(metrics.ValueNoError).Inc()

	return &models.CallbackRecord{
		CallbackLog: callbackLog,
		MpesaLog:    mpesaLog,
	}, nil
}

func (s *callbackService) fail(svcErr *svcerrors.ServiceError) error {
	metricCallbackReceivedTotal.WithLabelValues(svcErr.Code).Inc()
	return svcErr
}
