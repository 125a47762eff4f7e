// Package flusher owns the batch flush timer. On each tick it drains the
// notification queue and delivers the backlog sequentially, in FIFO
// order. A per-item failure is logged and never blocks the rest of the
// cycle. Drains happen only on the timer (or an explicit FlushNow); the
// queue never triggers its own flush.
package flusher

import (
	"context"
	"sync"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/mq/queue"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/notifier"
	"github.com/Teenu24/employee-recognition-api/pkg/logger"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// defaultInterval matches the original batcher's ten-minute period.
const defaultInterval = 10 * time.Minute

// Flusher periodically drains a queue into a notifier.
type Flusher struct {
	queue    queue.Queue
	notifier notifier.Notifier
	interval time.Duration
	logger   logger.Logger

	mu       sync.Mutex
	started  bool
	shutdown chan struct{}
	done     chan struct{}
}

// Option applies a configuration option to the Flusher.
type Option func(*Flusher)

// WithInterval sets the flush period.
func WithInterval(d time.Duration) Option {
	return func(f *Flusher) {
		if d > 0 {
			f.interval = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Flusher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Flusher draining q into n.
func New(q queue.Queue, n notifier.Notifier, opts ...Option) *Flusher {
	f := &Flusher{
		queue:    q,
		notifier: n,
		interval: defaultInterval,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Start launches the recurring flush loop. Starting a started flusher is
// a no-op.
func (f *Flusher) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started {
		return
	}
	if f.logger == nil {
		f.logger = logger.Get().Named("flusher")
	}
	f.shutdown = make(chan struct{})
	f.done = make(chan struct{})
	f.started = true

	go f.run(ctx)
}

func (f *Flusher) run(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.shutdown:
			return
		case <-ticker.C:
			f.FlushNow(ctx)
		}
	}
}

// Stop halts the timer. An in-flight drain finishes; no new cycles run.
func (f *Flusher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		return
	}
	close(f.shutdown)
	<-f.done
	f.started = false
}

// FlushNow runs a single drain cycle synchronously. Exposed so tests and
// operators can trigger a flush without waiting on the timer.
func (f *Flusher) FlushNow(ctx context.Context) {
	items := f.queue.Drain(ctx)
	if len(items) == 0 {
		return
	}

	log := f.logger
	if log == nil {
		log = logger.Get().Named("flusher")
	}

	log.Info(ctx, "flushing notification backlog", logger.Int("count", len(items)))
	for _, item := range items {
		if err := f.notifier.Deliver(ctx, item); err != nil {
			metrics.RecordErrorByComponent("flusher", "delivery_failed")
			log.Error(ctx, "batched notification delivery failed",
				logger.String("recognitionID", item.ID),
				logger.Error(err),
			)
		}
	}
	metrics.RecordNotificationFlush()
}
