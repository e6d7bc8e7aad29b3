package dispatchers

import (
	"errors"
	"fmt"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/svcerrors"
)

// DispatchService errors
const (
	codeValidationFailed = "DSP_1000"
	codeUnknownOperation = "DSP_1001"

	codeInternalAuditLogStoreFailed = "DSP_9000"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errUnknownOperation(op models.Operation) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnknownOperation, fmt.Sprintf("unknown operation %q", op), nil)
}

func errInternalAuditLogStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAuditLogStoreFailed, fmt.Errorf("auditLogStoreFailed: %w", cause))
}

// errFromPayload maps a payload decoding failure to a validation error.
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
