package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	auditormocks "mpesa-gateway/internal/auditors/mocks"
	dispatchermocks "mpesa-gateway/internal/dispatchers/mocks"
	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDispatchHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatchService := dispatchermocks.NewMockDispatchService(ctrl)
	handler := NewDispatchHandler(models.OperationSTKPush, mockDispatchService)

	body := []byte(`{"phone":"254700000000","amount":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/mpesa/stk-push", bytes.NewReader(body))
	req.Header.Set(headerContentType, "application/json")
	rr := httptest.NewRecorder()

	mockDispatchService.EXPECT().
		Dispatch(gomock.Any(), models.OperationSTKPush, body).
		Return(map[string]any{"CheckoutRequestID": "ws_CO_1"}, nil)

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"CheckoutRequestID":"ws_CO_1"}`, rr.Body.String())
}

func TestDispatchHandler_Handle_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatchService := dispatchermocks.NewMockDispatchService(ctrl)
	handler := NewDispatchHandler(models.OperationB2C, mockDispatchService)

	req := httptest.NewRequest(http.MethodPost, "/api/mpesa/b2c", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()

	expectedErr := svcerrors.NewUpstreamError("GW_2000", "Bad Request - Invalid PartyB", http.StatusBadRequest, nil)
	mockDispatchService.EXPECT().
		Dispatch(gomock.Any(), models.OperationB2C, []byte(`{}`)).
		Return(nil, expectedErr)

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "GW_2000", svcErr.Code)
}

func TestTransactionsHandler_Handle_Limit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "absent", query: "", wantLimit: 0},
		{name: "numeric", query: "?limit=20", wantLimit: 20},
		{name: "negative passed through", query: "?limit=-4", wantLimit: -4},
		{name: "unparseable", query: "?limit=ten", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuditService := auditormocks.NewMockAuditService(ctrl)
			handler := NewTransactionsHandler(mockAuditService)

			req := httptest.NewRequest(http.MethodGet, "/api/mpesa/transactions"+tt.query, nil)
			rr := httptest.NewRecorder()

			mockAuditService.EXPECT().
				RecentTransactions(gomock.Any(), tt.wantLimit).
				Return([]models.TransactionSummary{}, nil)

			err := handler.Handle(rr, req)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `[]`, rr.Body.String())
		})
	}
}
