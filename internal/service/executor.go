package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bankcore/payment-processor/internal/models"
)

// executeTransfer runs one transfer attempt: validate, acquire the ordered
// lock pair, re-read both accounts, debit/credit, persist. A nil return means
// the request is marked SUCCESS; any error leaves both balances untouched.
func (p *PaymentProcessor) executeTransfer(ctx context.Context, req *models.PaymentRequest) error {
	if err := ValidateRequest(req, p.cfg.MinAmount, p.cfg.MaxAmount); err != nil {
		return err
	}

	// External round trip (payment gateway, network) before touching locks.
	if err := p.simulateLatency(ctx); err != nil {
		return err
	}

	release := p.locks.AcquirePair(req.FromAccountID, req.ToAccountID)
	defer release()

	// The attempt may have been abandoned while waiting for the locks; a
	// discarded attempt must not move money.
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := p.accounts.GetByID(ctx, req.FromAccountID)
	if err != nil {
		return fmt.Errorf("source account %d: %w", req.FromAccountID, err)
	}
	to, err := p.accounts.GetByID(ctx, req.ToAccountID)
	if err != nil {
		return fmt.Errorf("destination account %d: %w", req.ToAccountID, err)
	}

	if from.Balance < req.Amount {
		return ErrInsufficientFunds
	}

	from.Balance -= req.Amount
	to.Balance += req.Amount

	// Cancellation may have landed while the accounts were being re-read; an
	// abandoned attempt must not commit the debit.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.accounts.Update(ctx, from, from.ID); err != nil {
		return fmt.Errorf("persisting debit: %w", err)
	}
	if err := p.accounts.Update(ctx, to, to.ID); err != nil {
		return fmt.Errorf("persisting credit: %w", err)
	}

	now := time.Now()
	req.Status = models.StatusSuccess
	req.ProcessedAt = &now
	p.audit.Log(fmt.Sprintf("payment %s: %d from account %d to %d - SUCCESS",
		req.RequestID, req.Amount, req.FromAccountID, req.ToAccountID))
	return nil
}

// simulateLatency sleeps for a random duration inside the configured window,
// returning early if the attempt is cancelled.
func (p *PaymentProcessor) simulateLatency(ctx context.Context) error {
	if p.cfg.MaxLatency <= 0 {
		return nil
	}
	d := p.cfg.MinLatency
	if span := p.cfg.MaxLatency - p.cfg.MinLatency; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	return sleepOrDone(ctx, d)
}

// sleepOrDone waits for the duration or returns early on context cancellation.
func sleepOrDone(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
