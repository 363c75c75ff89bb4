package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexSerializesCriticalSections(t *testing.T) {
	m := NewMutex()

	var inFlight, overlaps int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Lock(context.Background()))
			inFlight++
			if inFlight > 1 {
				overlaps++
			}
			time.Sleep(time.Millisecond)
			inFlight--
			m.Unlock()
		}()
	}
	wg.Wait()

	assert.Zero(t, overlaps, "critical sections must never overlap")
}

func TestMutexHandsOffInFIFOOrder(t *testing.T) {
	m := NewMutex()
	require.NoError(t, m.Lock(context.Background()))

	const waiters = 8
	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < waiters; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Lock(context.Background()))
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			m.Unlock()
		}()
		// Waiter i must be enqueued before waiter i+1 starts.
		require.Eventually(t, func() bool { return m.waiting() == i+1 },
			time.Second, time.Millisecond)
	}

	m.Unlock()
	wg.Wait()

	for i := 0; i < waiters; i++ {
		assert.Equal(t, i, order[i], "waiters must acquire in arrival order")
	}
}

func TestMutexLockCancelledWhileWaiting(t *testing.T) {
	m := NewMutex()
	require.NoError(t, m.Lock(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Lock(ctx)
	}()

	require.Eventually(t, func() bool { return m.waiting() == 1 },
		time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	// The abandoned waiter must not corrupt the queue.
	m.Unlock()
	require.NoError(t, m.Lock(context.Background()))
	m.Unlock()
}
