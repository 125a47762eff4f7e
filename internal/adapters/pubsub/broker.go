// Package pubsub implements the live fan-out registry: a topic maps to
// the set of currently subscribed listeners. Publishing synchronously
// hands the event to every live listener and returns; there is no replay
// for late subscribers.
package pubsub

import (
	"context"
	"strings"
	"sync"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// Event is the payload type flowing through subscriptions.
type Event = model.Recognition

// Topic constructors for the two channel kinds.
func UserTopic(userID string) string { return "user:" + userID }
func TeamTopic(teamID string) string { return "team:" + teamID }

// channelKind extracts the metric label from a topic.
func channelKind(topic string) string {
	if i := strings.IndexByte(topic, ':'); i > 0 {
		return topic[:i]
	}
	return "unknown"
}

// Subscription is one live listener on a topic. Close is the only way to
// leave the topic; the receive channel is closed afterwards.
type Subscription struct {
	topic  string
	events chan Event
	broker *Broker
	once   sync.Once
}

// C returns the receive channel for this subscription.
func (s *Subscription) C() <-chan Event {
	return s.events
}

// Close deregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.events)
	})
}

// Broker routes published events to current subscribers.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	counts map[string]int // channel kind -> live subscriber count
	buffer int
	closed bool
}

// defaultBufferSize bounds how far a slow subscriber may lag before
// events are dropped for it.
const defaultBufferSize = 16

// Option applies a configuration option to the Broker.
type Option func(*Broker)

// WithBufferSize sets the per-subscription channel buffer.
func WithBufferSize(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// NewBroker creates a broker with configuration options.
func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		subs:   make(map[string]map[*Subscription]struct{}),
		counts: make(map[string]int),
		buffer: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Subscribe registers a new listener on topic. The returned subscription
// receives events published after this call only.
func (b *Broker) Subscribe(ctx context.Context, topic string) *Subscription {
	sub := &Subscription{
		topic:  topic,
		events: make(chan Event, b.buffer),
		broker: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		// A closed broker hands out an already-closed subscription so
		// callers see a terminated stream rather than a nil.
		close(sub.events)
		sub.once.Do(func() {})
		return sub
	}

	set, ok := b.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[topic] = set
	}
	set[sub] = struct{}{}

	kind := channelKind(topic)
	b.counts[kind]++
	metrics.UpdateSubscribersActive(kind, b.counts[kind])

	return sub
}

// Publish synchronously delivers e to every current subscriber of topic.
// A subscriber whose buffer is full misses the event; delivery is
// fire-and-forget and never blocks the caller.
func (b *Broker) Publish(ctx context.Context, topic string, e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	kind := channelKind(topic)
	for sub := range b.subs[topic] {
		select {
		case sub.events <- e:
			metrics.RecordEventPublished(kind)
		default:
			metrics.RecordEventDropped(kind)
		}
	}
}

// Subscribers returns the number of live subscriptions on topic.
func (b *Broker) Subscribers(ctx context.Context, topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Close terminates every subscription and rejects future subscribers.
func (b *Broker) Close() error {
	b.mu.Lock()
	subs := make([]*Subscription, 0)
	for _, set := range b.subs {
		for sub := range set {
			subs = append(subs, sub)
		}
	}
	b.subs = make(map[string]map[*Subscription]struct{})
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() {
			close(sub.events)
		})
	}
	return nil
}

// remove deregisters sub; called from Subscription.Close.
func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[sub.topic]
	if !ok {
		return
	}
	if _, member := set[sub]; !member {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.topic)
	}

	kind := channelKind(sub.topic)
	b.counts[kind]--
	metrics.UpdateSubscribersActive(kind, b.counts[kind])
}
