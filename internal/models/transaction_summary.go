package models

import "time"

// TransactionSummary is the dashboard projection of a RESPONSE log entry.
type TransactionSummary struct {
	ID        string    `json:"id"`
	Reference *string   `json:"reference"`
	Status    LogStatus `json:"status"`
	Amount    any       `json:"amount"`
	Phone     any       `json:"phone"`
	Time      time.Time `json:"time"`
}

// NewTransactionSummary projects entry. Amount and phone come from the request payload,
// the first of the provider's spellings that carries a value wins.
func NewTransactionSummary(entry *LogEntry) TransactionSummary {
	status := entry.Status
	if status == "" {
		status = LogStatusUnknown
	}

	request := asObject(entry.RequestPayload)

	return TransactionSummary{
		ID:        entry.ID,
		Reference: entry.Reference,
		Status:    status,
		Amount:    firstPresent(request, "amount", "Amount"),
		Phone:     firstPresent(request, "phone", "PhoneNumber", "PartyA"),
		Time:      entry.CreatedAt,
	}
}
