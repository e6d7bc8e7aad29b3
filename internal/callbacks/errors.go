package callbacks

import (
	"errors"
	"fmt"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/svcerrors"
)

// CallbackService errors
const (
	codeValidationFailed = "CBK_1000"
	codeSignatureMissing = "CBK_1001"
	codeSignatureInvalid = "CBK_1002"
	codeSecretMissing    = "CBK_1003"

	codeInternalCallbackLogStoreFailed = "CBK_9000"
	codeInternalAuditLogStoreFailed    = "CBK_9001"
	codeInternalPayloadDecodeFailed    = "CBK_9002"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errSignatureMissing() *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeSignatureMissing, "missing webhook signature", nil)
}

func errSignatureInvalid() *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeSignatureInvalid, "invalid webhook signature", nil)
}

func errSecretMissing() *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeSecretMissing, "webhook secret not configured", nil)
}

func errInternalCallbackLogStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCallbackLogStoreFailed, fmt.Errorf("callbackLogStoreFailed: %w", cause))
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
