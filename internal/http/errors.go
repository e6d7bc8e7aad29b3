package http

import (
	"fmt"

	"mpesa-gateway/internal/shared/svcerrors"
)

// Request decoding errors
const (
	codeBodyTooLarge   = "HTTP_1000"
	codeBodyReadFailed = "HTTP_1001"
)

func errBodyTooLarge() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBodyTooLarge, fmt.Sprintf("request body too large: must be <= %d bytes", maxBodyBytes), nil)
}

func errBodyReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBodyReadFailed, "failed to read request body", cause)
}
