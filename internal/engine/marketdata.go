package engine

import (
	"context"
	"time"

	"github.com/myronova/obx/internal/cache"
	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/eventbus"
	"github.com/myronova/obx/internal/logging"
)

// MarketDataService subscribes to Trade events at construction and refreshes
// an immutable per-symbol Snapshot on every trade. The always-on primary
// cache is an in-memory cache.SnapshotCache; an optional secondary cache
// (e.g. Redis) additionally receives every refresh as a read-through cache
// of derived data, never a system of record.
type MarketDataService struct {
	eng       *MatchingEngine
	log       *logging.Logger
	primary   *cache.InMemory
	secondary cache.SnapshotCache // may be nil
}

func NewMarketDataService(eng *MatchingEngine, bus *eventbus.Bus, secondary cache.SnapshotCache, log *logging.Logger) *MarketDataService {
	m := &MarketDataService{
		eng:       eng,
		log:       log,
		primary:   cache.NewInMemory(),
		secondary: secondary,
	}
	bus.Subscribe(domain.EventTrade, m.onTrade)
	return m
}

func (m *MarketDataService) onTrade(e domain.Event) {
	t := e.Trade
	if t == nil {
		return
	}
	ob, ok := m.eng.Book(t.Symbol())
	if !ok {
		return
	}

	snap := domain.NewSnapshotBuilder(t.Symbol()).
		BestBid(ob.BestBid()).
		BestAsk(ob.BestAsk()).
		Spread(zeroIfNaN(ob.Spread())).
		Mid(zeroIfNaN(ob.Mid())).
		LastTradePrice(ob.LastTradePrice()).
		VWAP(ob.VWAP()).
		TotalVolume(ob.TotalVolume()).
		BidDepth(ob.BidDepth()).
		AskDepth(ob.AskDepth()).
		Build()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = m.primary.SetSnapshot(ctx, t.Symbol(), snap) // InMemory never errors

	if m.secondary != nil {
		if err := m.secondary.SetSnapshot(ctx, t.Symbol(), snap); err != nil {
			m.log.Warnw("secondary snapshot cache write failed", "symbol", t.Symbol(), "error", err)
		}
	}
}

// GetSnapshot returns the latest snapshot for symbol and whether one exists.
// Safe for concurrent use alongside the dispatcher goroutine's writes.
func (m *MarketDataService) GetSnapshot(symbol string) (domain.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	snap, err := m.primary.GetSnapshot(ctx, symbol)
	if err == nil {
		return snap, true
	}
	if m.secondary == nil {
		return domain.Snapshot{}, false
	}
	snap, err = m.secondary.GetSnapshot(ctx, symbol)
	if err != nil {
		return domain.Snapshot{}, false
	}
	return snap, true
}

func zeroIfNaN(v float64) float64 {
	if v != v { // NaN is the only float that is not equal to itself
		return 0
	}
	return v
}
