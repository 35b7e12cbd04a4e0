// Package syncx carries the best-effort persistence machinery behind the
// session controller: an ordered fire-and-forget write queue and an
// append-only event log.
package syncx

import (
	"context"
	"log"
	"sync"
	"time"
)

type op struct {
	name string
	do   func(context.Context) error
}

// Queue applies writes one at a time, in enqueue order. Failures are logged
// and dropped: local state is the optimistic truth and is never rolled back.
// Retry policy can be layered here later without touching callers.
type Queue struct {
	ops     chan op
	wg      sync.WaitGroup
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewQueue starts the apply loop. timeout bounds each operation; zero means
// 10 seconds.
func NewQueue(timeout time.Duration) *Queue {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	q := &Queue{
		ops:     make(chan op, 256),
		timeout: timeout,
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.wg.Done()
	for o := range q.ops {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := o.do(ctx); err != nil {
			log.Printf("syncx: %s failed: %v", o.name, err)
		}
		cancel()
	}
}

// Enqueue schedules fn. When the queue is full or already closed the
// operation is applied inline so it is never lost silently.
func (q *Queue) Enqueue(name string, fn func(context.Context) error) {
	o := op{name: name, do: fn}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.apply(o)
		return
	}
	select {
	case q.ops <- o:
		q.mu.Unlock()
	default:
		q.mu.Unlock()
		q.apply(o)
	}
}

func (q *Queue) apply(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	if err := o.do(ctx); err != nil {
		log.Printf("syncx: %s failed: %v", o.name, err)
	}
}

// Close drains pending operations and stops the loop.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ops)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
