package http

import (
	"net/http"

	"mpesa-gateway/internal/auditors"
	"mpesa-gateway/internal/callbacks"
	"mpesa-gateway/internal/dispatchers"
	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	dispatchService dispatchers.DispatchService,
	auditService auditors.AuditService,
	callbackService callbacks.CallbackService,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Route("/api/mpesa", func(r chi.Router) {
		for _, op := range models.Operations {
			r.Post("/"+string(op), errorHandlingAdapter(NewDispatchHandler(op, dispatchService)))
		}
		r.Get("/transactions", errorHandlingAdapter(NewTransactionsHandler(auditService)))

		r.Route("/logs", func(r chi.Router) {
			r.Post("/requests", errorHandlingAdapter(NewLogRequestHandler(auditService)))
			r.Post("/responses", errorHandlingAdapter(NewLogResponseHandler(auditService)))
			r.Post("/callbacks", errorHandlingAdapter(NewCallbackHandler(callbackService)))
		})
	})

	router.Get("/health", healthHandler)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
