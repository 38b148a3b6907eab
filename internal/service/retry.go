package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bankcore/payment-processor/internal/models"
)

// Process drives one request to a terminal status: up to MaxAttempts
// executions, each bounded by the attempt timeout. Timeouts and unexpected
// errors are retried with growing backoff; deterministic rejections
// short-circuit the loop.
func (p *PaymentProcessor) Process(ctx context.Context, req *models.PaymentRequest) *models.PaymentRequest {
	p.metrics.processed.Add(1)

	var lastErr error
	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			req.RetryCount++
			p.metrics.retries.Add(1)
			req.Status = models.StatusRetrying
			if err := sleepOrDone(ctx, p.backoff(attempt-1)); err != nil {
				lastErr = err
				break
			}
		}
		req.Status = models.StatusProcessing

		err := p.executeAttempt(ctx, req)
		if err == nil {
			p.settleSuccess(ctx, req)
			return req
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		p.log.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"attempt":    attempt + 1,
		}).Warnf("payment attempt failed: %v", err)
	}

	p.settleFailure(ctx, req, lastErr)
	return req
}

// executeAttempt bounds one execution with the attempt timeout. The attempt
// works on its own copy of the request and the copy is merged back only when
// the attempt finishes inside the window, so a goroutine abandoned by the
// timeout never touches the request the coordinator still owns. The abandoned
// goroutine still releases any held locks on exit.
func (p *PaymentProcessor) executeAttempt(ctx context.Context, req *models.PaymentRequest) error {
	attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
	defer cancel()

	attempt := *req
	done := make(chan error, 1)
	go func() {
		done <- p.executeTransfer(attemptCtx, &attempt)
	}()

	select {
	case err := <-done:
		if err == nil {
			*req = attempt
		}
		return err
	case <-attemptCtx.Done():
		return attemptCtx.Err()
	}
}

func (p *PaymentProcessor) settleSuccess(ctx context.Context, req *models.PaymentRequest) {
	p.metrics.successful.Add(1)
	p.record(ctx, req)
}

func (p *PaymentProcessor) settleFailure(ctx context.Context, req *models.PaymentRequest, err error) {
	now := time.Now()
	req.Status = models.StatusFailed
	if err != nil {
		req.ErrorMessage = err.Error()
	}
	req.ProcessedAt = &now
	p.metrics.failed.Add(1)
	p.audit.Log(fmt.Sprintf("payment %s: %d from account %d to %d - FAILED: %s",
		req.RequestID, req.Amount, req.FromAccountID, req.ToAccountID, req.ErrorMessage))
	p.record(ctx, req)
}

// record persists and publishes a terminal outcome, best effort. Neither
// failure affects the request's status.
func (p *PaymentProcessor) record(ctx context.Context, req *models.PaymentRequest) {
	if p.payments != nil {
		if err := p.payments.Create(ctx, req); err != nil {
			p.log.Warnf("storing payment request %s: %v", req.RequestID, err)
		}
	}
	if p.publisher != nil {
		event := models.PaymentProcessedEvent{
			RequestID:     req.RequestID,
			FromAccountID: req.FromAccountID,
			ToAccountID:   req.ToAccountID,
			Amount:        req.Amount,
			Status:        string(req.Status),
			ErrorMessage:  req.ErrorMessage,
			RetryCount:    req.RetryCount,
		}
		if req.ProcessedAt != nil {
			event.ProcessedAt = *req.ProcessedAt
		}
		if err := p.publisher.Publish(ctx, models.PaymentProcessedTopic, event); err != nil {
			p.log.Warnf("publishing outcome for %s: %v", req.RequestID, err)
		}
	}
}

// backoff reproduces the exponential curve with jitter used by the event
// publishers: base * 2^attempt capped at the max, +/-15% when jitter is on.
func (p *PaymentProcessor) backoff(attempt int) time.Duration {
	delay := time.Duration(math.Pow(2, float64(attempt))) * p.cfg.RetryBaseDelay

	if delay > p.cfg.RetryMaxDelay {
		delay = p.cfg.RetryMaxDelay
	}

	if p.cfg.RetryJitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}

	return delay
}
