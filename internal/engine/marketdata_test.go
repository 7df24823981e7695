package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/eventbus"
	"github.com/myronova/obx/internal/logging"
)

type fakeCache struct {
	set map[string]domain.Snapshot
}

func newFakeCache() *fakeCache { return &fakeCache{set: make(map[string]domain.Snapshot)} }

func (f *fakeCache) SetSnapshot(_ context.Context, symbol string, snap domain.Snapshot) error {
	f.set[symbol] = snap
	return nil
}

func (f *fakeCache) GetSnapshot(_ context.Context, symbol string) (domain.Snapshot, error) {
	snap, ok := f.set[symbol]
	if !ok {
		return domain.Snapshot{}, assert.AnError
	}
	return snap, nil
}

func TestMarketDataService_RefreshesOnTrade(t *testing.T) {
	bus := eventbus.New(0, logging.NewNop())
	defer bus.Shutdown()
	eng := NewMatchingEngine(bus, logging.NewNop())
	secondary := newFakeCache()
	md := NewMarketDataService(eng, bus, secondary, logging.NewNop())

	sell, _ := domain.NewOrder("TEST", domain.Sell, domain.Limit, 100, 100)
	eng.Submit(sell)
	buy, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 100, 40)
	eng.Submit(buy)

	require.Eventually(t, func() bool {
		_, ok := md.GetSnapshot("TEST")
		return ok
	}, time.Second, time.Millisecond)

	snap, ok := md.GetSnapshot("TEST")
	require.True(t, ok)
	assert.Equal(t, 100.0, snap.BestAsk)
	assert.Equal(t, 100.0, snap.LastTradePrice)
	assert.Equal(t, int64(40), snap.TotalVolume)
	assert.Equal(t, 100.0, snap.VWAP)

	assert.Contains(t, secondary.set, "TEST")
}

func TestMarketDataService_NoSnapshotBeforeAnyTrade(t *testing.T) {
	bus := eventbus.New(0, logging.NewNop())
	defer bus.Shutdown()
	eng := NewMatchingEngine(bus, logging.NewNop())
	md := NewMarketDataService(eng, bus, nil, logging.NewNop())

	_, ok := md.GetSnapshot("TEST")
	assert.False(t, ok)
}
