package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bankcore/payment-processor/internal/models"
	"github.com/bankcore/payment-processor/internal/service"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		from    int64
		to      int64
		amount  int64
		wantErr string
	}{
		{
			name:   "valid transfer",
			from:   1,
			to:     2,
			amount: 100,
		},
		{
			name:    "negative amount",
			from:    1,
			to:      2,
			amount:  -5,
			wantErr: "Amount too small",
		},
		{
			name:    "zero amount",
			from:    1,
			to:      2,
			amount:  0,
			wantErr: "Amount too small",
		},
		{
			name:    "amount above maximum",
			from:    1,
			to:      2,
			amount:  15_000_000,
			wantErr: "Amount exceeds maximum limit",
		},
		{
			name:    "missing source account",
			from:    0,
			to:      2,
			amount:  100,
			wantErr: "Invalid account IDs",
		},
		{
			name:    "missing destination account",
			from:    1,
			to:      0,
			amount:  100,
			wantErr: "Invalid account IDs",
		},
		{
			name:    "same source and destination",
			from:    1,
			to:      1,
			amount:  100,
			wantErr: "Cannot transfer to same account",
		},
		{
			name:    "amount checked before accounts",
			from:    1,
			to:      1,
			amount:  -5,
			wantErr: "Amount too small",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.PaymentRequest{
				RequestID:     "test",
				FromAccountID: tt.from,
				ToAccountID:   tt.to,
				Amount:        tt.amount,
				Status:        models.StatusPending,
			}

			err := service.ValidateRequest(req, 1, 10_000_000)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}
