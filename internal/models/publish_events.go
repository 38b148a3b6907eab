package models

import "time"

const (
	// PaymentProcessedTopic carries one event per terminal request.
	PaymentProcessedTopic = "payments.processed"
	// TransferRequestedTopic carries inbound single-transfer instructions.
	TransferRequestedTopic = "transfers.requested"
	// PaymentsDLQTopic receives inbound messages that exhausted handling retries.
	PaymentsDLQTopic = "payments.dlq"
)

// PaymentProcessedEvent is published when a request reaches SUCCESS or FAILED.
type PaymentProcessedEvent struct {
	RequestID     string    `json:"request_id"`
	FromAccountID int64     `json:"from_account_id"`
	ToAccountID   int64     `json:"to_account_id"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	RetryCount    int       `json:"retry_count"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// TransferRequestedEvent is the payload consumed from TransferRequestedTopic.
type TransferRequestedEvent struct {
	FromAccountID int64 `json:"from_account_id"`
	ToAccountID   int64 `json:"to_account_id"`
	Amount        int64 `json:"amount"`
}

// DLQMessage wraps an inbound message that could not be handled.
type DLQMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Timestamp     time.Time `json:"timestamp"`
	Attempts      int       `json:"attempts"`
}
