// Package engine wires the per-symbol order books into a multi-symbol
// matching engine, derives market-data snapshots from trade flow, and
// composes both behind a single Exchange facade. Lazy per-symbol book
// state and a mutex-guarded registry are grounded on
// olyamironova-exchange-engine/internal/core.Engine, generalized to
// dispatch through internal/book's sweep-based matching.
package engine

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myronova/obx/internal/book"
	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/errs"
	"github.com/myronova/obx/internal/eventbus"
	"github.com/myronova/obx/internal/logging"
)

// MatchingEngine routes submissions to the book for their symbol (creating
// it lazily), publishes lifecycle events, and tracks aggregate counters.
// Each book is single-writer: the registry itself is safe for concurrent
// lazy creation, but two goroutines calling Submit for the same symbol
// concurrently race on that book's internal state.
type MatchingEngine struct {
	bus *eventbus.Bus
	log *logging.Logger

	mu     sync.RWMutex
	books  map[string]*book.OrderBook

	totalOrders atomic.Int64
	totalTrades atomic.Int64
}

func NewMatchingEngine(bus *eventbus.Bus, log *logging.Logger) *MatchingEngine {
	return &MatchingEngine{
		bus:   bus,
		log:   log,
		books: make(map[string]*book.OrderBook),
	}
}

// Submit records the order's arrival, dispatches it to its symbol's book,
// publishes the event sequence OrderReceived, trades..., terminal-event, and
// returns the resulting trades. Construction-time rejections never reach
// this call; only *errs.InvariantError can be returned, for a defect that
// validated input should never trigger.
func (e *MatchingEngine) Submit(o *domain.Order) (trades []*domain.Trade, err error) {
	defer errs.Recover(&err)

	start := time.Now()
	ob := e.bookFor(o.Symbol())

	e.bus.Publish(domain.NewOrderEvent(domain.EventOrderReceived, o))

	trades = ob.AddOrder(o)

	for _, t := range trades {
		e.bus.Publish(domain.NewTradeEvent(t))
	}

	switch {
	case o.IsFilled():
		e.bus.Publish(domain.NewOrderEvent(domain.EventOrderFilled, o))
	case o.IsCancelled():
		e.bus.Publish(domain.NewOrderEvent(domain.EventOrderCancelled, o))
	default:
		e.bus.Publish(domain.NewOrderEvent(domain.EventOrderOpen, o))
	}

	e.totalOrders.Add(1)
	e.totalTrades.Add(int64(len(trades)))

	elapsed := time.Since(start)
	e.log.Debugw("order submitted",
		"order_id", o.ID(), "symbol", o.Symbol(), "type", o.Type(),
		"trades", len(trades), "latency_ns", elapsed.Nanoseconds())

	return trades, nil
}

// Cancel delegates to the book for symbol, or returns false if no book
// exists yet. Unlike Submit, a successful cancellation here does not
// itself publish an OrderCancelled event — see DESIGN.md for the rationale.
func (e *MatchingEngine) Cancel(symbol string, orderID int64) bool {
	ob, ok := e.lookupBook(symbol)
	if !ok {
		return false
	}
	return ob.CancelOrder(orderID)
}

// Book returns the book for symbol and whether it exists, used by the
// market-data projection to read post-trade book state.
func (e *MatchingEngine) Book(symbol string) (*book.OrderBook, bool) {
	return e.lookupBook(symbol)
}

// Stats reports the running order and trade counters.
func (e *MatchingEngine) Stats() (totalOrders, totalTrades int64) {
	return e.totalOrders.Load(), e.totalTrades.Load()
}

func (e *MatchingEngine) bookFor(symbol string) *book.OrderBook {
	symbol = strings.ToUpper(symbol)
	if ob, ok := e.lookupBook(symbol); ok {
		return ob
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if ob, ok := e.books[symbol]; ok {
		return ob
	}
	ob := book.NewOrderBook(symbol)
	e.books[symbol] = ob
	return ob
}

func (e *MatchingEngine) lookupBook(symbol string) (*book.OrderBook, bool) {
	symbol = strings.ToUpper(symbol)
	e.mu.RLock()
	defer e.mu.RUnlock()
	ob, ok := e.books[symbol]
	return ob, ok
}
