package dto

import "github.com/bankcore/payment-processor/internal/models"

// Transfer is a single transfer instruction as submitted over HTTP.
// Amount is in minor units.
type Transfer struct {
	FromAccountID int64 `json:"from_account_id"`
	ToAccountID   int64 `json:"to_account_id"`
	Amount        int64 `json:"amount"`
}

func (t *Transfer) ToEntity() *models.PaymentRequest {
	return models.NewPaymentRequest(t.FromAccountID, t.ToAccountID, t.Amount)
}

// Batch is the body of a batch submission.
type Batch struct {
	Transfers []Transfer `json:"transfers"`
}

func (b *Batch) ToEntities() []*models.PaymentRequest {
	requests := make([]*models.PaymentRequest, len(b.Transfers))
	for i := range b.Transfers {
		requests[i] = b.Transfers[i].ToEntity()
	}
	return requests
}
