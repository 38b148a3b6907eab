package service

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// AuditLogger decouples worker goroutines from log I/O: producers enqueue,
// a single consumer goroutine writes through logrus. Interleaving order
// across workers is not guaranteed; losing or duplicating an entry is not
// allowed.
type AuditLogger struct {
	entries chan string
	log     *logrus.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAuditLogger(buffer int, log *logrus.Logger) *AuditLogger {
	if buffer <= 0 {
		buffer = 1024
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &AuditLogger{
		entries: make(chan string, buffer),
		log:     log,
		done:    make(chan struct{}),
	}
	go l.consume()
	return l
}

func (l *AuditLogger) consume() {
	defer close(l.done)
	for msg := range l.entries {
		l.log.WithField("component", "audit").Info(msg)
	}
}

// Log enqueues one entry. It blocks the caller only while the queue is full
// and becomes a no-op once Close has been called.
func (l *AuditLogger) Log(message string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	l.entries <- message
}

// Pending returns how many entries are queued but not yet written.
func (l *AuditLogger) Pending() int {
	return len(l.entries)
}

// Close stops intake and blocks until the consumer has drained the queue.
// It is safe to call more than once.
func (l *AuditLogger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.entries)
	l.mu.Unlock()
	<-l.done
}
