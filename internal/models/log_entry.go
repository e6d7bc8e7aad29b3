package models

import "time"

type LogKind string

const (
	LogKindRequest  LogKind = "REQUEST"
	LogKindResponse LogKind = "RESPONSE"
	LogKindCallback LogKind = "CALLBACK"
)

type LogStatus string

const (
	LogStatusSuccess LogStatus = "SUCCESS"
	LogStatusFailed  LogStatus = "FAILED"
	LogStatusUnknown LogStatus = "UNKNOWN"
)

// LogEntry is one immutable row of the M-Pesa audit log. ID and CreatedAt are
// assigned by the store on append.
type LogEntry struct {
	ID               string    `json:"id"`
	Kind             LogKind   `json:"kind"`
	API              string    `json:"api,omitempty"`
	Reference        *string   `json:"reference"`
	TransactionID    *string   `json:"transactionId"`
	PaymentRequestID *string   `json:"paymentRequestId"`
	StatusCode       *int      `json:"statusCode"`
	Status           LogStatus `json:"status,omitempty"`
	RequestPayload   any       `json:"requestPayload"`
	ResponsePayload  any       `json:"responsePayload"`
	CreatedAt        time.Time `json:"createdAt"`
}
