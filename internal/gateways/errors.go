package gateways

import (
	"fmt"
	"net/http"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/svcerrors"
)

// GatewayClient errors
const (
	codeEndpointNotConfigured = "GW_1000"
	codeBaseURLNotConfigured  = "GW_1001"
	codeInvalidBaseURL        = "GW_1002"
	codeConsumerKeyMissing    = "GW_1003"
	codeConsumerSecretMissing = "GW_1004"
	codeInvalidEndpoint       = "GW_1005"

	codeTokenRequestFailed  = "GW_2000"
	codeTokenMissing        = "GW_2001"
	codeCallFailed          = "GW_2002"
	codeInvalidResponseBody = "GW_2003"

	codeInternalRequestBuildFailed = "GW_9000"
)

func errEndpointNotConfigured(op models.Operation) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeEndpointNotConfigured, fmt.Sprintf("missing daraja endpoint configuration for %s", op), nil)
}

func errInvalidEndpoint(op models.Operation, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidEndpoint, fmt.Sprintf("invalid daraja endpoint configuration for %s", op), cause)
}

func errBaseURLNotConfigured() *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeBaseURLNotConfigured, "missing daraja base url for relative endpoints", nil)
}

func errInvalidBaseURL(cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidBaseURL, "invalid daraja base url", cause)
}

func errConsumerKeyMissing() *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeConsumerKeyMissing, "missing consumer key", nil)
}

func errConsumerSecretMissing() *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeConsumerSecretMissing, "missing consumer secret", nil)
}

// errTokenRequestFailed covers both transport failures (statusCode 0) and non-2xx OAuth replies.
func errTokenRequestFailed(message string, statusCode int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeTokenRequestFailed, message, statusCode, cause)
}

func errTokenMissing() *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeTokenMissing, "daraja oauth response did not contain an access token", http.StatusBadGateway, nil)
}

func errCallFailed(message string, statusCode int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeCallFailed, message, statusCode, cause)
}

func errInvalidResponseBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeInvalidResponseBody, "daraja returned a non-JSON response", http.StatusBadGateway, cause)
}

func errInternalRequestBuildFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRequestBuildFailed, fmt.Errorf("requestBuildFailed: %w", cause))
}
