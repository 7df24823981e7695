package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/eventbus"
	"github.com/myronova/obx/internal/logging"
)

func newTestEngine() (*MatchingEngine, *eventbus.Bus) {
	bus := eventbus.New(0, logging.NewNop())
	return NewMatchingEngine(bus, logging.NewNop()), bus
}

func TestMatchingEngine_SubmitLazilyCreatesBook(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()

	o, err := domain.NewOrder("test", domain.Buy, domain.Limit, 10, 5)
	require.NoError(t, err)

	_, err = eng.Submit(o)
	require.NoError(t, err)

	ob, ok := eng.Book("TEST")
	require.True(t, ok)
	assert.Equal(t, 10.0, ob.BestBid())
}

func TestMatchingEngine_Counters(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()

	sell, _ := domain.NewOrder("TEST", domain.Sell, domain.Limit, 100, 10)
	eng.Submit(sell)
	buy, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 100, 10)
	eng.Submit(buy)

	orders, trades := eng.Stats()
	assert.Equal(t, int64(2), orders)
	assert.Equal(t, int64(1), trades)
}

func TestMatchingEngine_CancelUnknownSymbol(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()
	assert.False(t, eng.Cancel("NOSUCHSYMBOL", 1))
}

func TestMatchingEngine_CancelDelegatesToBook(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 5)
	eng.Submit(o)

	assert.True(t, eng.Cancel("test", o.ID()))
	assert.False(t, eng.Cancel("test", o.ID()))
}

// Cancel itself never publishes an OrderCancelled event — only a
// submission that results in cancellation does.
func TestMatchingEngine_CancelDoesNotPublishEvent(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()

	var mu sync.Mutex
	cancelEvents := 0
	bus.Subscribe(domain.EventOrderCancelled, func(domain.Event) {
		mu.Lock()
		cancelEvents++
		mu.Unlock()
	})

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 5)
	eng.Submit(o)
	eng.Cancel("TEST", o.ID())

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, cancelEvents)
}

// An IOC submission that cancels DOES publish the terminal OrderCancelled
// event, as part of Submit's own event sequence.
func TestMatchingEngine_SubmitPublishesEventSequence(t *testing.T) {
	eng, bus := newTestEngine()
	defer bus.Shutdown()

	var mu sync.Mutex
	var kinds []domain.EventKind
	record := func(e domain.Event) {
		mu.Lock()
		kinds = append(kinds, e.Kind)
		mu.Unlock()
	}
	bus.Subscribe(domain.EventOrderReceived, record)
	bus.Subscribe(domain.EventTrade, record)
	bus.Subscribe(domain.EventOrderFilled, record)
	bus.Subscribe(domain.EventOrderCancelled, record)
	bus.Subscribe(domain.EventOrderOpen, record)

	resting, _ := domain.NewOrder("TEST", domain.Sell, domain.Limit, 100, 10)
	eng.Submit(resting)

	ioc, _ := domain.NewOrder("TEST", domain.Buy, domain.IOC, 100, 20)
	eng.Submit(ioc)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(kinds) >= 5
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// resting LIMIT: Received, Open. Then IOC: Received, Trade, Cancelled.
	require.Len(t, kinds, 5)
	assert.Equal(t, domain.EventOrderReceived, kinds[0])
	assert.Equal(t, domain.EventOrderOpen, kinds[1])
	assert.Equal(t, domain.EventOrderReceived, kinds[2])
	assert.Equal(t, domain.EventTrade, kinds[3])
	assert.Equal(t, domain.EventOrderCancelled, kinds[4])
}
