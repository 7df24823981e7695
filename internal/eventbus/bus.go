// Package eventbus implements a bounded, non-blocking publish/subscribe
// bus with a single dispatcher goroutine, grounded on
// realmfikri-Limitless/server/hub.go's non-blocking channel-send idiom.
package eventbus

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/logging"
)

const (
	defaultCapacity = 10000
	pollInterval    = time.Millisecond
	shutdownJoin    = 500 * time.Millisecond
)

// Subscriber is invoked by the dispatcher goroutine for every event of a
// kind it is registered for. Panics are caught and logged; they never
// propagate to the engine or affect other subscribers.
type Subscriber func(domain.Event)

// Bus is a single-producer-safe, single-dispatcher pub/sub: publish is a
// non-blocking queue offer that drops on overflow rather than
// back-pressuring the matching path.
type Bus struct {
	log *logging.Logger

	queue    chan domain.Event
	dropped  atomic.Int64
	running  atomic.Bool
	done     chan struct{}

	mu   sync.RWMutex
	subs map[domain.EventKind][]Subscriber
}

// New constructs a bus with the given queue capacity (0 uses the default of
// 10,000) and starts its dispatcher goroutine.
func New(capacity int, log *logging.Logger) *Bus {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	b := &Bus{
		log:  log,
		queue: make(chan domain.Event, capacity),
		done: make(chan struct{}),
		subs: make(map[domain.EventKind][]Subscriber),
	}
	b.running.Store(true)
	go b.dispatch()
	return b
}

// Subscribe registers a callback for a specific event kind. Iteration
// order at dispatch time equals subscription order.
func (b *Bus) Subscribe(kind domain.EventKind, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[kind] = append(b.subs[kind], sub)
}

// Publish offers the event onto the bounded queue without blocking. If the
// queue is full the event is dropped and the dropped-event counter is
// incremented; the matching path must never block on slow consumers.
func (b *Bus) Publish(e domain.Event) {
	select {
	case b.queue <- e:
	default:
		b.dropped.Add(1)
	}
}

// Dropped returns the number of events dropped due to queue overflow.
func (b *Bus) Dropped() int64 { return b.dropped.Load() }

func (b *Bus) dispatch() {
	defer close(b.done)
	for b.running.Load() {
		select {
		case e := <-b.queue:
			b.notify(e)
		default:
			time.Sleep(pollInterval)
		}
	}
	// drain remaining events before exiting
	for {
		select {
		case e := <-b.queue:
			b.notify(e)
		default:
			return
		}
	}
}

func (b *Bus) notify(e domain.Event) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subs[e.Kind]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		b.safeInvoke(sub, e)
	}
}

func (b *Bus) safeInvoke(sub Subscriber, e domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("event subscriber panicked", "kind", e.Kind, "recover", r)
		}
	}()
	sub(e)
}

// Shutdown stops the dispatcher, waits up to a bounded join for it to drain
// the queue, and logs the dropped-event count if any.
func (b *Bus) Shutdown() {
	b.running.Store(false)
	select {
	case <-b.done:
	case <-time.After(shutdownJoin):
	}
	if n := b.dropped.Load(); n > 0 {
		b.log.Warnw("event bus shutdown with dropped events", "dropped", n)
	}
}
