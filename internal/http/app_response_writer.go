package http

import (
	"net/http"

	"mpesa-gateway/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter wraps the response so middleware can read the final status and the
// service error, if any, after the handler returns.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// ResolvedStatus is the written status, 200 when the handler never called WriteHeader.
func (w *appResponseWriter) ResolvedStatus() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// outcome reads status and error code from w when it is an appResponseWriter.
func outcome(w http.ResponseWriter) (status int, errorCode string) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.ResolvedStatus(), appWriter.ErrorCode()
	}
	return http.StatusOK, ""
}
