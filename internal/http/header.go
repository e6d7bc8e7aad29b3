package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID        = "x-request-id"
	headerContentType      = "content-type"
	headerWebhookSignature = "x-webhook-signature"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func webhookSignature(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerWebhookSignature))
}
