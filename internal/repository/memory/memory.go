// Package memory provides in-memory implementations of the engine's store
// interfaces, used when no database is configured and by the concurrency
// tests. Both repositories return copies so callers never alias internal
// state.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bankcore/payment-processor/internal/models"
)

// AccountRepo is a mutex-guarded in-memory account store.
type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[int64]models.Account
}

// NewAccountRepo seeds the store from an id -> balance map.
func NewAccountRepo(balances map[int64]int64) *AccountRepo {
	accounts := make(map[int64]models.Account, len(balances))
	for id, balance := range balances {
		accounts[id] = models.Account{ID: id, Balance: balance}
	}
	return &AccountRepo{accounts: accounts}
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d not found", id)
	}
	return &account, nil
}

func (r *AccountRepo) Update(ctx context.Context, account *models.Account, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("account %d not found", id)
	}
	r.accounts[id] = *account
	return nil
}

// Balance reads one balance directly, bypassing the context plumbing.
func (r *AccountRepo) Balance(id int64) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accounts[id].Balance
}

// TotalBalance sums every balance in the store.
func (r *AccountRepo) TotalBalance() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, account := range r.accounts {
		total += account.Balance
	}
	return total
}

// PaymentRepo keeps terminal payment requests for on-demand lookup.
type PaymentRepo struct {
	mu       sync.RWMutex
	requests map[string]models.PaymentRequest
}

func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{requests: make(map[string]models.PaymentRequest)}
}

func (r *PaymentRepo) Create(ctx context.Context, req *models.PaymentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.RequestID] = *req
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*models.PaymentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("payment request %s not found", id)
	}
	return &req, nil
}
