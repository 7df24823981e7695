package engine

import (
	"github.com/myronova/obx/internal/book"
	"github.com/myronova/obx/internal/cache"
	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/eventbus"
	"github.com/myronova/obx/internal/logging"
)

// Exchange is the sole external entry point, composing the event bus, the
// matching engine and the market-data service behind four operations:
// submit, cancel, snapshot and shutdown.
type Exchange struct {
	bus *eventbus.Bus
	eng *MatchingEngine
	md  *MarketDataService
}

// Option customizes Exchange construction.
type Option func(*options)

type options struct {
	busCapacity   int
	secondary     cache.SnapshotCache
}

// WithEventBusCapacity overrides the default bounded-queue capacity.
func WithEventBusCapacity(n int) Option {
	return func(o *options) { o.busCapacity = n }
}

// WithSnapshotCache attaches an optional secondary snapshot cache (e.g.
// Redis) that the Market Data Service writes through in addition to its
// always-on in-memory map.
func WithSnapshotCache(c cache.SnapshotCache) Option {
	return func(o *options) { o.secondary = c }
}

func NewExchange(log *logging.Logger, opts ...Option) *Exchange {
	cfg := options{}
	for _, apply := range opts {
		apply(&cfg)
	}

	bus := eventbus.New(cfg.busCapacity, log)
	eng := NewMatchingEngine(bus, log)
	md := NewMarketDataService(eng, bus, cfg.secondary, log)

	return &Exchange{bus: bus, eng: eng, md: md}
}

// Submit routes an order, already validated by domain.NewOrder, through the
// matching engine.
func (x *Exchange) Submit(o *domain.Order) ([]*domain.Trade, error) {
	return x.eng.Submit(o)
}

// Cancel removes a resting order from its symbol's book.
func (x *Exchange) Cancel(symbol string, orderID int64) bool {
	return x.eng.Cancel(symbol, orderID)
}

// Snapshot returns the latest market-data projection for symbol.
func (x *Exchange) Snapshot(symbol string) (domain.Snapshot, bool) {
	return x.md.GetSnapshot(symbol)
}

// Stats reports cumulative order/trade counters and the event bus's
// dropped-event count.
func (x *Exchange) Stats() (totalOrders, totalTrades, dropped int64) {
	o, t := x.eng.Stats()
	return o, t, x.bus.Dropped()
}

// Book exposes the underlying book for a symbol, for callers (e.g. the
// demonstration driver) that need to render book state directly rather
// than through a Snapshot.
func (x *Exchange) Book(symbol string) (*book.OrderBook, bool) {
	return x.eng.Book(symbol)
}

// Shutdown drains the event bus's dispatcher and returns the number of
// events dropped over the bus's lifetime.
func (x *Exchange) Shutdown() int64 {
	x.bus.Shutdown()
	return x.bus.Dropped()
}
