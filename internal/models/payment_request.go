package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusRetrying   PaymentStatus = "RETRYING"
	StatusSuccess    PaymentStatus = "SUCCESS"
	StatusFailed     PaymentStatus = "FAILED"
)

// IsTerminal reports whether no further attempts will be made.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusRetrying, StatusSuccess, StatusFailed:
		return true
	default:
		return false
	}
}

// PaymentRequest is a transfer instruction and its evolving outcome.
// Amount is in minor units. The request is owned by exactly one worker while
// it is being processed and is never mutated again once terminal.
type PaymentRequest struct {
	RequestID     string        `gorm:"primaryKey" json:"request_id"`
	FromAccountID int64         `gorm:"index;not null" json:"from_account_id"`
	ToAccountID   int64         `gorm:"index;not null" json:"to_account_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"not null" json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	RetryCount    int           `json:"retry_count"`
	CreatedAt     time.Time     `json:"created_at"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
}

// NewPaymentRequest builds a PENDING request with a short unique id.
func NewPaymentRequest(fromAccountID, toAccountID, amount int64) *PaymentRequest {
	return &PaymentRequest{
		RequestID:     uuid.New().String()[:8],
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}
}
