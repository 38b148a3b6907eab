package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bankcore/payment-processor/internal/service"
)

func TestLockForReturnsSameLockForSameAccount(t *testing.T) {
	registry := service.NewLockRegistry()

	const goroutines = 100
	locks := make(chan *sync.Mutex, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			locks <- registry.LockFor(7)
		}()
	}
	wg.Wait()
	close(locks)

	first := registry.LockFor(7)
	for l := range locks {
		assert.Same(t, first, l)
	}

	assert.NotSame(t, first, registry.LockFor(8))
}

func TestAcquirePairSerializesCriticalSections(t *testing.T) {
	registry := service.NewLockRegistry()

	const (
		goroutines = 20
		iterations = 100
	)

	// counter is only safe if every AcquirePair caller is mutually excluded.
	var counter int
	done := make(chan struct{})

	go func() {
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			a, b := int64(1), int64(2)
			if i%2 == 1 {
				// Half the goroutines acquire in the opposite direction.
				a, b = b, a
			}
			go func(a, b int64) {
				defer wg.Done()
				for j := 0; j < iterations; j++ {
					release := registry.AcquirePair(a, b)
					counter++
					release()
				}
			}(a, b)
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("opposing lock acquisitions deadlocked")
	}

	assert.Equal(t, goroutines*iterations, counter)
}

func TestAcquirePairReleasesBothLocks(t *testing.T) {
	registry := service.NewLockRegistry()

	release := registry.AcquirePair(3, 4)
	release()

	// Both locks must be free again.
	assert.True(t, registry.LockFor(3).TryLock())
	assert.True(t, registry.LockFor(4).TryLock())
	registry.LockFor(3).Unlock()
	registry.LockFor(4).Unlock()
}
