package http

import (
	"net/http"
	"strconv"

	"mpesa-gateway/internal/auditors"
	"mpesa-gateway/internal/dispatchers"
	"mpesa-gateway/internal/models"
)

type dispatchHandler struct {
	operation       models.Operation
	dispatchService dispatchers.DispatchService
}

func NewDispatchHandler(operation models.Operation, dispatchService dispatchers.DispatchService) AppHttpHandler {
	return &dispatchHandler{
		operation:       operation,
		dispatchService: dispatchService,
	}
}

// Handle processes POST /api/mpesa/{operation} requests and relays the Daraja response.
func (h *dispatchHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	result, err := h.dispatchService.Dispatch(r.Context(), h.operation, body)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, result)
}

type transactionsHandler struct {
	auditService auditors.AuditService
}

func NewTransactionsHandler(auditService auditors.AuditService) AppHttpHandler {
	return &transactionsHandler{
		auditService: auditService,
	}
}

// Handle processes GET /api/mpesa/transactions?limit=N. A missing or unparseable limit means the default.
func (h *transactionsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}

	summaries, err := h.auditService.RecentTransactions(r.Context(), limit)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, summaries)
}
