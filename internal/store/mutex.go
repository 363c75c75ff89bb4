package store

import (
	"context"
	"sync"
)

// Mutex is a FIFO asynchronous mutual-exclusion lock. It serializes
// read-modify-write cycles against the store so two interleaved requests
// cannot clobber each other's writes.
//
// Waiters are queued in arrival order and release hands the lock directly to
// the head of the queue, so critical sections run in the order they were
// requested. The lock is intra-process only: it does not protect against
// other OS processes opening the same file.
type Mutex struct {
	mu     sync.Mutex
	locked bool
	queue  []chan struct{}
}

// NewMutex returns an unlocked mutex. Each store owns exactly one; sharing a
// store between tests means sharing its lock, so tests construct fresh stores.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock acquires the mutex, blocking in FIFO order behind earlier callers.
// It returns early with the context error if ctx is cancelled while waiting.
func (m *Mutex) Lock(ctx context.Context) error {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		return nil
	}

	ready := make(chan struct{})
	m.queue = append(m.queue, ready)
	m.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		for i, ch := range m.queue {
			if ch == ready {
				m.queue = append(m.queue[:i], m.queue[i+1:]...)
				m.mu.Unlock()
				return ctx.Err()
			}
		}
		m.mu.Unlock()
		// The lock was handed to us in the race window; pass it on.
		m.Unlock()
		return ctx.Err()
	}
}

// Unlock releases the mutex. If waiters are queued the lock stays held and
// ownership moves to the head waiter; otherwise the lock clears.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		close(next)
		return
	}
	m.locked = false
}

// waiting reports the number of queued waiters. Used by tests.
func (m *Mutex) waiting() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
