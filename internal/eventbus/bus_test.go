package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/logging"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New(0, logging.NewNop())
	defer bus.Shutdown()

	var mu sync.Mutex
	var got []domain.EventKind
	done := make(chan struct{}, 1)

	bus.Subscribe(domain.EventOrderOpen, func(e domain.Event) {
		mu.Lock()
		got = append(got, e.Kind)
		mu.Unlock()
		done <- struct{}{}
	})

	o, err := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 1)
	require.NoError(t, err)
	bus.Publish(domain.NewOrderEvent(domain.EventOrderOpen, o))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber was never invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EventKind{domain.EventOrderOpen}, got)
}

func TestBus_DropsOnOverflow(t *testing.T) {
	bus := New(1, logging.NewNop())
	defer bus.Shutdown()

	// a slow subscriber keeps the dispatcher from draining the capacity-1
	// queue as fast as the loop below publishes into it.
	bus.Subscribe(domain.EventOrderOpen, func(domain.Event) { time.Sleep(50 * time.Millisecond) })

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 1)
	for i := 0; i < 1000; i++ {
		bus.Publish(domain.NewOrderEvent(domain.EventOrderOpen, o))
	}

	assert.Greater(t, bus.Dropped(), int64(0))
}

func TestBus_SubscriberPanicDoesNotAffectOthers(t *testing.T) {
	bus := New(0, logging.NewNop())
	defer bus.Shutdown()

	called := make(chan struct{}, 1)
	bus.Subscribe(domain.EventOrderOpen, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventOrderOpen, func(domain.Event) { called <- struct{}{} })

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 1)
	bus.Publish(domain.NewOrderEvent(domain.EventOrderOpen, o))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("second subscriber was never invoked after the first panicked")
	}
}

func TestBus_ShutdownDrainsQueue(t *testing.T) {
	bus := New(10, logging.NewNop())

	var mu sync.Mutex
	count := 0
	bus.Subscribe(domain.EventOrderOpen, func(domain.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 1)
	for i := 0; i < 5; i++ {
		bus.Publish(domain.NewOrderEvent(domain.EventOrderOpen, o))
	}
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, count)
}
