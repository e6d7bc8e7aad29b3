package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument = "invalid_argument"
	categoryUnauthenticated = "unauthenticated"
	categoryConfiguration   = "configuration"
	categoryUpstream        = "upstream"
	categoryInternal        = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// NewInvalidArgumentError creates a new ServiceError with category invalid_argument.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInvalidArgument,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusBadRequest,
	}
}

// NewUnauthenticatedError creates a new ServiceError with category unauthenticated.
func NewUnauthenticatedError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryUnauthenticated,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusUnauthorized,
	}
}

// NewConfigurationError creates a new ServiceError with category configuration.
// Unlike internal errors the message is returned to the client, it names the missing setting.
func NewConfigurationError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryConfiguration,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusInternalServerError,
	}
}

// NewUpstreamError creates a new ServiceError with category upstream.
// A zero or out of range status falls back to 500.
func NewUpstreamError(code, message string, statusCode int, cause error) *ServiceError {
	if statusCode < 400 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	return &ServiceError{
		Category:       categoryUpstream,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: statusCode,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal server error",
		Cause:          cause,
		HttpStatusCode: http.StatusInternalServerError,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a service-level error with category, code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category       string // invalid_argument, unauthenticated, configuration, upstream or internal
	Code           string // service-owned stable code (e.g. DSP_1000)
	Message        string // client-safe, human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

func (e *ServiceError) IsUpstreamError() bool {
	return e.Category == categoryUpstream
}

// IsServerError reports whether the error is caused by this service or its setup rather than the caller.
func (e *ServiceError) IsServerError() bool {
	return e.Category == categoryInternal || e.Category == categoryConfiguration
}
