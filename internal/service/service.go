package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bankcore/payment-processor/internal/models"
)

// AccountRepo is the engine's view of the account store. The store may be
// slow; every call is bounded by the attempt's context.
type AccountRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Update(ctx context.Context, account *models.Account, id int64) error
}

// PaymentRepo persists terminal request outcomes for on-demand lookup.
type PaymentRepo interface {
	Create(ctx context.Context, req *models.PaymentRequest) error
	GetByID(ctx context.Context, id string) (*models.PaymentRequest, error)
}

// Publisher defines the interface for publishing events to Kafka topics.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// ErrNotTracked is returned by Request when no payment store is configured.
var ErrNotTracked = errors.New("payment request tracking is disabled")

// Config tunes the engine. Zero values fall back to the defaults of the
// original processor, except the latency window: MaxLatency <= 0 disables
// the simulated external round trip.
type Config struct {
	PoolSize       int
	MaxAttempts    int
	AttemptTimeout time.Duration
	MinAmount      int64
	MaxAmount      int64
	MinLatency     time.Duration
	MaxLatency     time.Duration
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	RetryJitter    bool
	AuditBuffer    int
}

func (c Config) withDefaults() Config {
	if c.PoolSize <= 0 {
		c.PoolSize = 8
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 5 * time.Second
	}
	if c.MinAmount <= 0 {
		c.MinAmount = 1
	}
	if c.MaxAmount <= 0 {
		c.MaxAmount = 10_000_000
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 100 * time.Millisecond
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 10 * time.Second
	}
	return c
}

// PaymentProcessor moves money between accounts under concurrent load:
// a bounded worker pool executes retryable transfer attempts, per-account
// locks serialize balance mutations, and an async audit path keeps workers
// off the log I/O.
type PaymentProcessor struct {
	accounts  AccountRepo
	payments  PaymentRepo
	publisher Publisher
	locks     *LockRegistry
	audit     *AuditLogger
	metrics   *Metrics
	cfg       Config
	log       *logrus.Logger
}

// NewPaymentProcessor wires the engine. payments and publisher may be nil;
// outcomes are then neither persisted nor published.
func NewPaymentProcessor(accounts AccountRepo, payments PaymentRepo, publisher Publisher, cfg Config, log *logrus.Logger) *PaymentProcessor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg = cfg.withDefaults()
	return &PaymentProcessor{
		accounts:  accounts,
		payments:  payments,
		publisher: publisher,
		locks:     NewLockRegistry(),
		audit:     NewAuditLogger(cfg.AuditBuffer, log),
		metrics:   &Metrics{},
		cfg:       cfg,
		log:       log,
	}
}

// ProcessBatch fans the requests out across the worker pool, waits for every
// outcome and returns the per-batch summary. Per-request business failures
// never fail the batch.
func (p *PaymentProcessor) ProcessBatch(ctx context.Context, requests []*models.PaymentRequest) models.BatchSummary {
	start := time.Now()
	p.log.Infof("processing %d payments concurrently", len(requests))

	g := new(errgroup.Group)
	g.SetLimit(p.cfg.PoolSize)
	for _, req := range requests {
		req := req
		g.Go(func() error {
			p.Process(ctx, req)
			return nil
		})
	}
	g.Wait()

	duration := time.Since(start)
	summary := models.BatchSummary{
		TotalRequests: len(requests),
		DurationMs:    duration.Milliseconds(),
	}
	for _, req := range requests {
		summary.Processed++
		summary.Retries += int64(req.RetryCount)
		switch req.Status {
		case models.StatusSuccess:
			summary.Successful++
		default:
			summary.Failed++
		}
	}
	if duration > 0 {
		summary.Throughput = float64(len(requests)) / duration.Seconds()
	}

	p.log.Infof("batch processing complete: %d payments in %dms (%.2f payments/sec)",
		len(requests), summary.DurationMs, summary.Throughput)
	return summary
}

// Metrics returns the live process-wide snapshot.
func (p *PaymentProcessor) Metrics() models.MetricsSnapshot {
	s := p.metrics.Snapshot()
	s.ThreadPoolSize = p.cfg.PoolSize
	s.PendingLogEntries = p.audit.Pending()
	return s
}

// ResetMetrics zeroes the counters without touching in-flight work.
func (p *PaymentProcessor) ResetMetrics() {
	p.metrics.Reset()
}

// Request looks up a previously processed request by id.
func (p *PaymentProcessor) Request(ctx context.Context, id string) (*models.PaymentRequest, error) {
	if p.payments == nil {
		return nil, ErrNotTracked
	}
	return p.payments.GetByID(ctx, id)
}

// Close stops the audit consumer after it has drained the queue.
func (p *PaymentProcessor) Close() {
	p.audit.Close()
}
