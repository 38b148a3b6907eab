package service

import "github.com/bankcore/payment-processor/internal/models"

// ValidateRequest checks a transfer request's structural and business
// validity. It performs no I/O and takes no locks; every rejection is a
// deterministic function of immutable request fields and is therefore never
// retried. Amount bounds are in minor units.
func ValidateRequest(req *models.PaymentRequest, minAmount, maxAmount int64) error {
	if req.Amount < minAmount {
		return ErrAmountTooSmall
	}
	if req.Amount > maxAmount {
		return ErrAmountTooLarge
	}
	if req.FromAccountID == 0 || req.ToAccountID == 0 {
		return ErrInvalidAccountIDs
	}
	if req.FromAccountID == req.ToAccountID {
		return ErrSameAccount
	}
	return nil
}
