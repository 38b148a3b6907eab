package service

import "errors"

// Deterministic rejection reasons. Their messages surface verbatim in
// PaymentRequest.ErrorMessage, so they are fixed strings.
var (
	ErrAmountTooSmall    = errors.New("Amount too small")
	ErrAmountTooLarge    = errors.New("Amount exceeds maximum limit")
	ErrInvalidAccountIDs = errors.New("Invalid account IDs")
	ErrSameAccount       = errors.New("Cannot transfer to same account")
	ErrInsufficientFunds = errors.New("Insufficient funds")
)

// retryable reports whether another attempt could change the outcome.
// Validator rejections and insufficient funds are deterministic functions of
// the request under the same snapshot, so they are terminal; everything else
// (timeouts, store failures, missing accounts) is treated as transient.
func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrAmountTooLarge),
		errors.Is(err, ErrInvalidAccountIDs),
		errors.Is(err, ErrSameAccount),
		errors.Is(err, ErrInsufficientFunds):
		return false
	default:
		return true
	}
}
