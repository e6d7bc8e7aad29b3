package http

import (
	"net/http"

	"mpesa-gateway/internal/auditors"
	"mpesa-gateway/internal/callbacks"
)

type logRequestHandler struct {
	auditService auditors.AuditService
}

func NewLogRequestHandler(auditService auditors.AuditService) AppHttpHandler {
	return &logRequestHandler{auditService: auditService}
}

// Handle processes POST /api/mpesa/logs/requests.
func (h *logRequestHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	entry, err := h.auditService.LogRequest(r.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, entry)
}

type logResponseHandler struct {
	auditService auditors.AuditService
}

func NewLogResponseHandler(auditService auditors.AuditService) AppHttpHandler {
	return &logResponseHandler{auditService: auditService}
}

// Handle processes POST /api/mpesa/logs/responses.
func (h *logResponseHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	entry, err := h.auditService.LogResponse(r.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, entry)
}

type callbackHandler struct {
	callbackService callbacks.CallbackService
}

func NewCallbackHandler(callbackService callbacks.CallbackService) AppHttpHandler {
	return &callbackHandler{callbackService: callbackService}
}

// Handle processes POST /api/mpesa/logs/callbacks. The signature covers the body bytes exactly as sent.
func (h *callbackHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	record, err := h.callbackService.Receive(r.Context(), webhookSignature(r), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, record)
}
