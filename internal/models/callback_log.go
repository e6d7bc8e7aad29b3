package models

import "time"

// CallbackLog records an asynchronous provider callback exactly as received.
type CallbackLog struct {
	ID               string    `json:"id"`
	EventType        *string   `json:"eventType"`
	Payload          any       `json:"payload"`
	TransactionID    *string   `json:"transactionId"`
	PaymentRequestID *string   `json:"paymentRequestId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CallbackRecord is the pair of records persisted for one callback.
type CallbackRecord struct {
	CallbackLog *CallbackLog `json:"callbackLog"`
	MpesaLog    *LogEntry    `json:"mpesaLog"`
}
