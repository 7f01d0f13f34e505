package utils

import (
	"sync"
	"time"
)

// DefaultPopTimeout is used by WaitPop when the queue was built with a
// non-positive timeout.
const DefaultPopTimeout = 5 * time.Millisecond

// CyclicQueue is a bounded FIFO queue. Push never blocks and reports a full
// queue; WaitPop blocks up to the configured timeout and reports an empty
// queue. Timeouts are ordinary outcomes, not errors.
type CyclicQueue[T any] struct {
	mu      sync.Mutex
	items   []T
	maxSize int
	timeout time.Duration
	// signal carries "an item may be available" wakeups to blocked pops
	signal chan struct{}
}

// NewCyclicQueue builds a queue holding at most maxSize items. popTimeout
// bounds how long WaitPop blocks on an empty queue.
func NewCyclicQueue[T any](maxSize int, popTimeout time.Duration) *CyclicQueue[T] {
	if maxSize <= 0 {
		maxSize = 1
	}
	if popTimeout <= 0 {
		popTimeout = DefaultPopTimeout
	}
	return &CyclicQueue[T]{
		maxSize: maxSize,
		timeout: popTimeout,
		signal:  make(chan struct{}, 1),
	}
}

// Push appends item and reports success; a full queue rejects the item.
func (q *CyclicQueue[T]) Push(item T) bool {
	q.mu.Lock()
	if len(q.items) >= q.maxSize {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.wake()
	return true
}

// WaitPop removes and returns the oldest item. When the queue stays empty
// past the configured timeout it returns the zero value and false.
func (q *CyclicQueue[T]) WaitPop() (T, bool) {
	deadline := time.NewTimer(q.timeout)
	defer deadline.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.items[0]
			q.items = q.items[1:]
			remaining := len(q.items)
			q.mu.Unlock()
			if remaining > 0 {
				// hand the wakeup on to the next blocked pop
				q.wake()
			}
			return item, true
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
		case <-deadline.C:
			var zero T
			return zero, false
		}
	}
}

func (q *CyclicQueue[T]) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// IsFull reports whether the queue is at capacity.
func (q *CyclicQueue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) >= q.maxSize
}

// IsEmpty reports whether the queue holds no items.
func (q *CyclicQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Size returns the number of queued items.
func (q *CyclicQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear drops every queued item.
func (q *CyclicQueue[T]) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
