package service

import "sync"

// LockRegistry hands out one mutex per account id. Locks are created lazily
// on first reference and live for the lifetime of the process.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[int64]*sync.Mutex)}
}

// LockFor returns the unique lock for an account. Concurrent first access
// from many goroutines still yields exactly one lock object per id.
func (r *LockRegistry) LockFor(accountID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[accountID] = l
	}
	return l
}

// AcquirePair locks both accounts in ascending-id order and returns a closure
// that releases them in reverse order. The fixed total order is what keeps
// opposing transfers between the same two accounts from forming a wait-cycle.
func (r *LockRegistry) AcquirePair(a, b int64) (release func()) {
	first, second := a, b
	if first > second {
		first, second = second, first
	}
	firstLock := r.LockFor(first)
	secondLock := r.LockFor(second)
	firstLock.Lock()
	secondLock.Lock()
	return func() {
		secondLock.Unlock()
		firstLock.Unlock()
	}
}
