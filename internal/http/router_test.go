package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mpesa-gateway/internal/auditors"
	"mpesa-gateway/internal/callbacks"
	"mpesa-gateway/internal/dispatchers"
	"mpesa-gateway/internal/gateways"
	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/configs"
	"mpesa-gateway/internal/shared/filestorages"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec"

// routerFixture wires the real services over a file-backed store and a stub Daraja server.
type routerFixture struct {
	handler http.Handler
	store   *stores.FileAuditLogStore
	storage filestorages.FileStorage
	daraja  *httptest.Server
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"tok"}`)
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"MerchantRequestID":"x"}`)
	})
	mux.HandleFunc("/mpesa/b2c/v3/paymentrequest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PartyB"}`)
	})
	daraja := httptest.NewServer(mux)
	t.Cleanup(daraja.Close)

	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := stores.NewFileAuditLogStore(storage)

	gatewayClient := gateways.NewDarajaClient(configs.MpesaConfig{
		Environment: "sandbox",
		Endpoints: configs.EndpointsConfig{
			STKPush: "/mpesa/stkpush/v1/processrequest",
			B2C:     "/mpesa/b2c/v3/paymentrequest",
		},
		Sandbox: configs.MpesaProfileConfig{
			BaseURL:        daraja.URL,
			ConsumerKey:    "key",
			ConsumerSecret: "secret",
		},
	}, daraja.Client())

	logger, err := loggers.NewWithWriter("error", io.Discard)
	require.NoError(t, err)

	handler := NewRouter(
		dispatchers.NewDispatchService(gatewayClient, store),
		auditors.NewAuditService(store),
		callbacks.NewCallbackService(testWebhookSecret, store, store),
		logger,
	)

	return &routerFixture{handler: handler, store: store, storage: storage, daraja: daraja}
}

func (f *routerFixture) do(t *testing.T, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func (f *routerFixture) keys(t *testing.T, dir string) []string {
	t.Helper()

	keys, err := f.storage.List(context.Background(), dir)
	require.NoError(t, err)
	return keys
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestRouter_STKPushSuccess(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mpesa/stk-push", []byte(`{"phone":"254700000000","amount":1,"reference":"INV-1"}`), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, map[string]any{"MerchantRequestID": "x"}, decode[map[string]any](t, rr))

	assert.Len(t, f.keys(t, "mpesa-logs/REQUEST"), 1)
	responses, err := f.store.RecentResponses(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.LogStatusSuccess, responses[0].Status)
	assert.Equal(t, 200, *responses[0].StatusCode)
	assert.Equal(t, "INV-1", *responses[0].Reference)
	assert.Equal(t, map[string]any{"MerchantRequestID": "x"}, responses[0].ResponsePayload)
}

func TestRouter_STKPushMissingAmount(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mpesa/stk-push", []byte(`{"phone":"254700000000"}`), nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errorResponse := decode[ErrorResponse](t, rr)
	assert.Equal(t, "invalid_argument", errorResponse.ErrorCategory)
	assert.Contains(t, errorResponse.ErrorDescription, "amount")

	assert.Empty(t, f.keys(t, "mpesa-logs/REQUEST"))
	assert.Empty(t, f.keys(t, "mpesa-logs/RESPONSE"))
}

func TestRouter_ProviderFailureIsLoggedAndRelayed(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mpesa/b2c", []byte(`{"PartyB":"nope"}`), nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errorResponse := decode[ErrorResponse](t, rr)
	assert.Equal(t, "upstream", errorResponse.ErrorCategory)
	assert.Equal(t, "Bad Request - Invalid PartyB", errorResponse.ErrorDescription)

	responses, err := f.store.RecentResponses(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.LogStatusFailed, responses[0].Status)
	assert.Equal(t, 400, *responses[0].StatusCode)
	assert.Equal(t, map[string]any{"error": "Bad Request - Invalid PartyB"}, responses[0].ResponsePayload)
}

func TestRouter_MissingEndpointConfiguration(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mpesa/ratiba", nil, nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "missing daraja endpoint configuration for ratiba", decode[ErrorResponse](t, rr).ErrorDescription)

	assert.Len(t, f.keys(t, "mpesa-logs/REQUEST"), 1)
	assert.Len(t, f.keys(t, "mpesa-logs/RESPONSE"), 1)
}

func TestRouter_Transactions(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	for i := 0; i < 3; i++ {
		rr := f.do(t, http.MethodPost, "/api/mpesa/stk-push", []byte(`{"phone":"254700000000","amount":5}`), nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default", query: "", want: 3},
		{name: "limited", query: "?limit=2", want: 2},
		{name: "unparseable falls back to default", query: "?limit=abc", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, "/api/mpesa/transactions"+tt.query, nil, nil)
			require.Equal(t, http.StatusOK, rr.Code)

			summaries := decode[[]map[string]any](t, rr)
			require.Len(t, summaries, tt.want)
			assert.Equal(t, "SUCCESS", summaries[0]["status"])
			assert.Equal(t, float64(5), summaries[0]["amount"])
			assert.Equal(t, "254700000000", summaries[0]["phone"])
			assert.Nil(t, summaries[0]["reference"])
		})
	}
}

func TestRouter_ManualLogs(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mpesa/logs/requests", []byte(`{"api":"b2b","requestPayload":{"Amount":3}}`), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	entry := decode[map[string]any](t, rr)
	assert.Equal(t, "REQUEST", entry["kind"])
	assert.NotEmpty(t, entry["id"])
	assert.NotEmpty(t, entry["createdAt"])

	rr = f.do(t, http.MethodPost, "/api/mpesa/logs/responses", []byte(`{"api":"b2b","statusCode":200,"status":"SUCCESS","responsePayload":{"ok":true}}`), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "RESPONSE", decode[map[string]any](t, rr)["kind"])

	rr = f.do(t, http.MethodPost, "/api/mpesa/logs/responses", []byte(`{"api":"b2b"}`), nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required fields: responsePayload", decode[ErrorResponse](t, rr).ErrorDescription)
}

func TestRouter_Callbacks(t *testing.T) {
	t.Parallel()

	body := []byte(`{"eventType":"stk.callback","transactionId":"QK1","payload":{"ResultCode":0}}`)

	t.Run("missing signature", func(t *testing.T) {
		f := newRouterFixture(t)

		rr := f.do(t, http.MethodPost, "/api/mpesa/logs/callbacks", body, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, f.keys(t, "callback-logs"))
		assert.Empty(t, f.keys(t, "mpesa-logs/CALLBACK"))
	})

	t.Run("wrong signature", func(t *testing.T) {
		f := newRouterFixture(t)

		rr := f.do(t, http.MethodPost, "/api/mpesa/logs/callbacks", body, map[string]string{
			headerWebhookSignature: callbacks.Sign("other-secret", body),
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, f.keys(t, "callback-logs"))
	})

	t.Run("signed", func(t *testing.T) {
		f := newRouterFixture(t)

		rr := f.do(t, http.MethodPost, "/api/mpesa/logs/callbacks", body, map[string]string{
			headerWebhookSignature: callbacks.Sign(testWebhookSecret, body),
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		record := decode[models.CallbackRecord](t, rr)
		require.NotNil(t, record.CallbackLog)
		require.NotNil(t, record.MpesaLog)
		assert.Equal(t, "QK1", *record.CallbackLog.TransactionID)
		assert.Equal(t, models.LogKindCallback, record.MpesaLog.Kind)
		assert.Equal(t, map[string]any{"ResultCode": float64(0)}, record.MpesaLog.ResponsePayload)

		assert.Len(t, f.keys(t, "callback-logs"), 1)
		assert.Len(t, f.keys(t, "mpesa-logs/CALLBACK"), 1)
	})
}

func TestRouter_BodyTooLarge(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	large := append([]byte(`{"pad":"`), bytes.Repeat([]byte("a"), maxBodyBytes)...)
	large = append(large, []byte(`"}`)...)

	rr := f.do(t, http.MethodPost, "/api/mpesa/b2b", large, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, codeBodyTooLarge, decode[ErrorResponse](t, rr).ErrorCode)
	assert.Empty(t, f.keys(t, "mpesa-logs/REQUEST"))
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rr := f.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(headerRequestID))
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.do(t, http.MethodGet, "/health", nil, nil)

	rr := f.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "mpesa_gateway_http_http_requests_total")
}
