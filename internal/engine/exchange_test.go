package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/logging"
)

func TestExchange_SubmitCancelSnapshot(t *testing.T) {
	x := NewExchange(logging.NewNop())
	defer x.Shutdown()

	sell, err := domain.NewOrder("TEST", domain.Sell, domain.Limit, 100, 50)
	require.NoError(t, err)
	_, err = x.Submit(sell)
	require.NoError(t, err)

	buy, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 100, 20)
	trades, err := x.Submit(buy)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	require.Eventually(t, func() bool {
		_, ok := x.Snapshot("TEST")
		return ok
	}, time.Second, time.Millisecond)

	snap, ok := x.Snapshot("TEST")
	require.True(t, ok)
	assert.Equal(t, 100.0, snap.LastTradePrice)
	assert.Equal(t, int64(20), snap.TotalVolume)

	assert.True(t, x.Cancel("TEST", sell.ID()))
}

func TestExchange_SnapshotMissingSymbol(t *testing.T) {
	x := NewExchange(logging.NewNop())
	defer x.Shutdown()
	_, ok := x.Snapshot("NOPE")
	assert.False(t, ok)
}

func TestExchange_Stats(t *testing.T) {
	x := NewExchange(logging.NewNop())
	defer x.Shutdown()

	o, _ := domain.NewOrder("TEST", domain.Buy, domain.Limit, 10, 5)
	x.Submit(o)

	orders, trades, dropped := x.Stats()
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(0), trades)
	assert.Equal(t, int64(0), dropped)
}

func TestExchange_WithEventBusCapacity(t *testing.T) {
	x := NewExchange(logging.NewNop(), WithEventBusCapacity(1))
	defer x.Shutdown()
	require.NotNil(t, x)
}
