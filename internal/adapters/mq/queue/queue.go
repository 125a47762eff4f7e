// Package queue holds notifications awaiting a batch flush.
//
// The queue is deliberately unbounded: enqueue never blocks and never
// fails, and the backlog is drained only by the periodic flusher, never
// by enqueue volume.
package queue

import (
	"context"
	"sync"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// Item is the payload type held on the queue.
type Item = model.Recognition

// Queue provides non-blocking enqueue and bulk drain semantics.
type Queue interface {
	// Enqueue appends an item. It always succeeds.
	Enqueue(ctx context.Context, item Item)

	// Drain atomically removes and returns the entire backlog in FIFO
	// order. An empty queue drains to an empty slice.
	Drain(ctx context.Context) []Item

	// Len returns the current number of queued items.
	Len(ctx context.Context) int
}

// InMemoryQueue implements Queue with a mutex-guarded slice.
type InMemoryQueue struct {
	mu    sync.Mutex
	items []Item
}

// NewInMemoryQueue creates an empty in-memory queue.
func NewInMemoryQueue() *InMemoryQueue {
	metrics.UpdateNotificationQueueSize(0)
	return &InMemoryQueue{}
}

// Enqueue appends an item to the backlog.
func (q *InMemoryQueue) Enqueue(ctx context.Context, item Item) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, item)
	metrics.RecordNotificationQueued()
	metrics.UpdateNotificationQueueSize(len(q.items))
}

// Drain swaps out the whole backlog and returns it in FIFO order.
func (q *InMemoryQueue) Drain(ctx context.Context) []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	metrics.UpdateNotificationQueueSize(0)
	return items
}

// Len returns the current backlog size.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
