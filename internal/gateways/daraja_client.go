package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/configs"
	"mpesa-gateway/internal/shared/loggers"
	"mpesa-gateway/internal/shared/metrics"
	"mpesa-gateway/internal/shared/svcerrors"
)

const maxResponseBytes = 10 * 1024 * 1024

// GatewayClient forwards a payload to one Daraja operation and returns the provider's JSON response.
//
//go:generate mockgen -source=daraja_client.go -destination=./mocks/gateway_client_mock.go -package=mocks
type GatewayClient interface {
	// Call fetches a fresh OAuth token and POSTs payload to the operation's endpoint.
	// Errors are *svcerrors.ServiceError with category configuration or upstream.
	Call(ctx context.Context, op models.Operation, payload any, overrides *Overrides) (any, error)
}

type darajaClient struct {
	config     configs.MpesaConfig
	httpClient *http.Client
}

func NewDarajaClient(config configs.MpesaConfig, httpClient *http.Client) GatewayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.HTTPClientTimeout()}
	}
	return &darajaClient{
		config:     config,
		httpClient: httpClient,
	}
}

func (c *darajaClient) Call(ctx context.Context, op models.Operation, payload any, overrides *Overrides) (any, error) {
	startTime := time.Now()
	defer func() {
		metricCallDurationSeconds.WithLabelValues(string(op)).Observe(time.Since(startTime).Seconds())
	}()

	cfg := resolveCallConfig(c.config, op, overrides)
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldAPI, string(op)).
		Str(loggers.FieldEnvironment, cfg.environment).
		Logger()

	callURL, err := resolveURL(cfg.baseURL, cfg.endpoint, op)
	if err != nil {
		return nil, c.fail(op, stageConfig, err)
	}

	token, err := c.accessToken(ctx, cfg, op)
	if err != nil {
		stage := stageToken
		if svcErr, ok := svcerrors.AsServiceError(err); ok && !svcErr.IsUpstreamError() {
			stage = stageConfig
		}
		logger.Warn().Err(err).Msg("daraja oauth token request failed")
		return nil, c.fail(op, stage, err)
	}

	logger.Debug().Msgf("calling daraja %s", callURL)
	result, err := c.postJSON(ctx, callURL, token, payload)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			logger.Warn().Err(err).Int(loggers.FieldUpstreamCode, svcErr.HttpStatusCode).Msg("daraja call failed")
		}
		return nil, c.fail(op, stageCall, err)
	}

	metricCallsTotal.WithLabelValues(string(op), stageCall, metrics.ValueNoError).Inc()
	return result, nil
}

// accessToken performs the client-credentials exchange. Tokens are not cached.
func (c *darajaClient) accessToken(ctx context.Context, cfg callConfig, op models.Operation) (string, error) {
	if cfg.consumerKey == "" {
		return "", errConsumerKeyMissing()
	}
	if cfg.consumerSecret == "" {
		return "", errConsumerSecretMissing()
	}

	oauthURL, err := resolveURL(cfg.baseURL, cfg.oauthEndpoint, op)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oauthURL, nil)
	if err != nil {
		return "", errInternalRequestBuildFailed(err)
	}
	req.SetBasicAuth(cfg.consumerKey, cfg.consumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errTokenRequestFailed(fmt.Sprintf("daraja oauth request failed: %v", err), 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errTokenRequestFailed(fmt.Sprintf("daraja oauth request failed: %v", err), 0, err)
	}
	if !isSuccess(resp.StatusCode) {
		return "", errTokenRequestFailed(upstreamMessage(resp.StatusCode, body), resp.StatusCode, nil)
	}

	var tokenResponse struct {
		AccessToken      string `json:"access_token"`
		AccessTokenCamel string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return "", errInvalidResponseBody(err)
	}

	token := firstNonEmpty(tokenResponse.AccessToken, tokenResponse.AccessTokenCamel)
	if token == "" {
		return "", errTokenMissing()
	}
	return token, nil
}

func (c *darajaClient) postJSON(ctx context.Context, callURL, token string, payload any) (any, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errInternalRequestBuildFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, errInternalRequestBuildFailed(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errCallFailed(fmt.Sprintf("daraja request failed: %v", err), 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errCallFailed(fmt.Sprintf("daraja request failed: %v", err), 0, err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, errCallFailed(upstreamMessage(resp.StatusCode, body), resp.StatusCode, nil)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	// UseNumber keeps provider numbers exactly as sent.
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var result any
	if err := decoder.Decode(&result); err != nil {
		return nil, errInvalidResponseBody(err)
	}
	return result, nil
}

func (c *darajaClient) fail(op models.Operation, stage string, err error) error {
	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricCallsTotal.WithLabelValues(string(op), stage, code).Inc()
	return err
}

// upstreamMessage prefers the errorMessage field of a Daraja error body.
func upstreamMessage(statusCode int, body []byte) string {
	var darajaError struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &darajaError); err == nil && darajaError.ErrorMessage != "" {
		return darajaError.ErrorMessage
	}
	return fmt.Sprintf("request failed with status code %d", statusCode)
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
