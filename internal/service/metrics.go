package service

import (
	"sync/atomic"

	"github.com/bankcore/payment-processor/internal/models"
)

// Metrics holds the process-wide counters incremented by every worker.
type Metrics struct {
	processed  atomic.Int64
	successful atomic.Int64
	failed     atomic.Int64
	retries    atomic.Int64
}

// Snapshot returns a point-in-time view. ThreadPoolSize and
// PendingLogEntries are filled in by the processor.
func (m *Metrics) Snapshot() models.MetricsSnapshot {
	s := models.MetricsSnapshot{
		Processed:  m.processed.Load(),
		Successful: m.successful.Load(),
		Failed:     m.failed.Load(),
		Retries:    m.retries.Load(),
	}
	if s.Processed > 0 {
		s.SuccessRate = float64(s.Successful) * 100 / float64(s.Processed)
	}
	return s
}

// Reset zeroes every counter without affecting in-flight work.
func (m *Metrics) Reset() {
	m.processed.Store(0)
	m.successful.Store(0)
	m.failed.Store(0)
	m.retries.Store(0)
}
