package auditors

import (
	"errors"
	"fmt"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/svcerrors"
)

// AuditService errors
const (
	codeValidationFailed = "AUD_1000"

	codeInternalAuditLogStoreFailed = "AUD_9000"
	codeInternalPayloadDecodeFailed = "AUD_9001"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errInternalAuditLogStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAuditLogStoreFailed, fmt.Errorf("auditLogStoreFailed: %w", cause))
}

func errInternalPayloadDecodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPayloadDecodeFailed, fmt.Errorf("payloadDecodeFailed: %w", cause))
}

func errFromPayload(err error) *svcerrors.ServiceError {
	var missing *models.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return errValidationFailed(missing.Error(), err)
	case errors.Is(err, models.ErrPayloadNotObject):
		return errValidationFailed(models.ErrPayloadNotObject.Error(), err)
	default:
		return errValidationFailed("invalid json body", err)
	}
}
