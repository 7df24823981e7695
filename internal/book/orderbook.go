package book

import (
	"math"
	"sort"

	"github.com/myronova/obx/internal/domain"
)

type indexEntry struct {
	side  domain.Side
	price float64
}

// OrderBook is the per-symbol structure holding two sorted collections of
// price levels (bids descending, asks ascending), plus an order index for
// O(log P) cancellation lookup. It is single-writer: every exported method
// must be called from a single submitter goroutine per symbol (see
// internal/engine).
type OrderBook struct {
	symbol string

	bids     map[float64]*PriceLevel
	bidKeys  []float64 // descending
	asks     map[float64]*PriceLevel
	askKeys  []float64 // ascending

	index map[int64]indexEntry

	trades        []*domain.Trade
	lastTradePrice float64
	totalVolume    int64
	totalTurnover  float64
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   make(map[float64]*PriceLevel),
		asks:   make(map[float64]*PriceLevel),
		index:  make(map[int64]indexEntry),
	}
}

func (ob *OrderBook) Symbol() string { return ob.symbol }

// AddOrder dispatches to the matching routine for the order's type and
// returns the resulting trades, in sweep order.
func (ob *OrderBook) AddOrder(o *domain.Order) []*domain.Trade {
	switch o.Type() {
	case domain.Limit:
		return ob.matchLimit(o)
	case domain.Market:
		return ob.matchMarket(o)
	case domain.IOC:
		return ob.matchIOC(o)
	case domain.FOC:
		return ob.matchFOC(o)
	}
	return nil
}

func (ob *OrderBook) matchLimit(o *domain.Order) []*domain.Trade {
	trades := ob.sweep(o, false)
	if o.RemainingQty() > 0 {
		ob.rest(o)
	}
	return trades
}

// matchMarket sweeps with price ignored and never rests; any unfilled
// remainder is discarded. The order's final status (FILLED or
// PARTIALLY_FILLED) is already set by Fill during the sweep.
func (ob *OrderBook) matchMarket(o *domain.Order) []*domain.Trade {
	return ob.sweep(o, true)
}

func (ob *OrderBook) matchIOC(o *domain.Order) []*domain.Trade {
	trades := ob.sweep(o, false)
	if o.RemainingQty() > 0 {
		o.Cancel()
	}
	return trades
}

// matchFOC performs the all-or-nothing dry-run measurement before touching
// any state; it executes the real sweep only if the reachable quantity
// covers the full remaining requirement.
func (ob *OrderBook) matchFOC(o *domain.Order) []*domain.Trade {
	if ob.availableQty(o) < o.RemainingQty() {
		o.Cancel()
		return nil
	}
	return ob.sweep(o, false)
}

// availableQty walks the opposite book in best-first order, summing each
// crossing level's total quantity and short-circuiting once the running
// sum reaches the incoming order's remaining quantity.
func (ob *OrderBook) availableQty(o *domain.Order) int64 {
	keys, levels := ob.oppositeSide(o.Side())
	var sum int64
	for _, price := range keys {
		if !crosses(o.Side(), o.Price(), price) {
			break
		}
		sum += levels[price].TotalQty()
		if sum >= o.RemainingQty() {
			break
		}
	}
	return sum
}

// sweep iterates the opposite-side levels in best-first order. If
// ignorePrice is false, it stops at the first level the incoming order does
// not cross. For each crossing level it drains resting orders FIFO,
// generating trades at the level's (maker) price, until the level is
// drained or the incoming order is filled.
func (ob *OrderBook) sweep(incoming *domain.Order, ignorePrice bool) []*domain.Trade {
	var trades []*domain.Trade
	side := incoming.Side()
	keys, levels := ob.oppositeSide(side)

	i := 0
	for i < len(keys) && incoming.RemainingQty() > 0 {
		price := keys[i]
		if !ignorePrice && !crosses(side, incoming.Price(), price) {
			break
		}
		level := levels[price]

		for !level.IsEmpty() && incoming.RemainingQty() > 0 {
			resting := level.Peek()
			fill := min64(incoming.RemainingQty(), resting.RemainingQty())

			var buyID, sellID int64
			if side == domain.Buy {
				buyID, sellID = incoming.ID(), resting.ID()
			} else {
				buyID, sellID = resting.ID(), incoming.ID()
			}
			trade := domain.NewTrade(ob.symbol, buyID, sellID, level.Price(), fill)
			trades = append(trades, trade)
			ob.recordTrade(trade)

			incoming.Fill(fill)
			resting.Fill(fill)
			level.OnFill(fill)

			if resting.RemainingQty() == 0 {
				level.Dequeue()
				delete(ob.index, resting.ID())
			}
		}

		if level.IsEmpty() {
			delete(levels, price)
			keys = removeKey(keys, price)
			i = 0 // keys slice shrank; restart scan from best price
			continue
		}
		i++
	}

	ob.setSideKeys(side.Opposite(), keys)
	return trades
}

func (ob *OrderBook) recordTrade(t *domain.Trade) {
	ob.trades = append(ob.trades, t)
	ob.lastTradePrice = t.Price()
	ob.totalVolume += t.Quantity()
	ob.totalTurnover += t.Notional()
}

// rest places the order's remainder on the same-side book at its limit
// price and indexes it. An order that has not traded yet is marked OPEN; a
// partly filled one keeps its PARTIALLY_FILLED status.
func (ob *OrderBook) rest(o *domain.Order) {
	levels, keys := ob.sideLevels(o.Side())
	level, ok := levels[o.Price()]
	if !ok {
		level = NewPriceLevel(o.Price())
		levels[o.Price()] = level
		keys = insertSorted(keys, o.Price(), o.Side() == domain.Buy)
		ob.setSideKeys(o.Side(), keys)
	}
	level.Enqueue(o)
	ob.index[o.ID()] = indexEntry{side: o.Side(), price: o.Price()}
	if o.Status() == domain.New {
		o.MarkOpen()
	}
}

// CancelOrder looks up the order by id, removes it from its resting level
// and the index, and drops the level if it is now empty. Returns true iff
// the order was found and removed.
func (ob *OrderBook) CancelOrder(orderID int64) bool {
	entry, ok := ob.index[orderID]
	if !ok {
		return false
	}
	levels, keys := ob.sideLevels(entry.side)
	level := levels[entry.price]
	if level == nil || !level.Remove(orderID) {
		return false
	}
	delete(ob.index, orderID)
	if level.IsEmpty() {
		delete(levels, entry.price)
		keys = removeKey(keys, entry.price)
		ob.setSideKeys(entry.side, keys)
	}
	return true
}

// --- side bookkeeping helpers ---

func (ob *OrderBook) sideLevels(side domain.Side) (map[float64]*PriceLevel, []float64) {
	if side == domain.Buy {
		return ob.bids, ob.bidKeys
	}
	return ob.asks, ob.askKeys
}

func (ob *OrderBook) oppositeSide(side domain.Side) ([]float64, map[float64]*PriceLevel) {
	levels, keys := ob.sideLevels(side.Opposite())
	return keys, levels
}

func (ob *OrderBook) setSideKeys(side domain.Side, keys []float64) {
	if side == domain.Buy {
		ob.bidKeys = keys
	} else {
		ob.askKeys = keys
	}
}

// crosses reports whether an incoming order at the given price crosses a
// resting level at levelPrice: BUY crosses iff incoming.price >= levelPrice;
// SELL crosses iff incoming.price <= levelPrice.
func crosses(side domain.Side, incomingPrice, levelPrice float64) bool {
	if side == domain.Buy {
		return incomingPrice >= levelPrice
	}
	return incomingPrice <= levelPrice
}

// insertSorted performs a binary-search insert of price into keys, kept
// ascending for asks or descending for bids.
func insertSorted(keys []float64, price float64, descending bool) []float64 {
	var idx int
	if descending {
		idx = sort.Search(len(keys), func(i int) bool { return keys[i] < price })
	} else {
		idx = sort.Search(len(keys), func(i int) bool { return keys[i] > price })
	}
	keys = append(keys, 0)
	copy(keys[idx+1:], keys[idx:])
	keys[idx] = price
	return keys
}

func removeKey(keys []float64, price float64) []float64 {
	for i, k := range keys {
		if k == price {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// --- market-data accessors ---

func (ob *OrderBook) BestBid() float64 {
	if len(ob.bidKeys) == 0 {
		return 0
	}
	return ob.bidKeys[0]
}

func (ob *OrderBook) BestAsk() float64 {
	if len(ob.askKeys) == 0 {
		return 0
	}
	return ob.askKeys[0]
}

// Spread returns best_ask - best_bid, or NaN if either side is empty.
func (ob *OrderBook) Spread() float64 {
	if len(ob.bidKeys) == 0 || len(ob.askKeys) == 0 {
		return math.NaN()
	}
	return ob.BestAsk() - ob.BestBid()
}

// Mid returns (best_bid + best_ask) / 2, or NaN if either side is empty.
func (ob *OrderBook) Mid() float64 {
	if len(ob.bidKeys) == 0 || len(ob.askKeys) == 0 {
		return math.NaN()
	}
	return (ob.BestBid() + ob.BestAsk()) / 2
}

func (ob *OrderBook) LastTradePrice() float64 { return ob.lastTradePrice }
func (ob *OrderBook) TotalVolume() int64      { return ob.totalVolume }
func (ob *OrderBook) TotalTurnover() float64  { return ob.totalTurnover }

// VWAP returns total_turnover / total_volume, or 0 if no volume.
func (ob *OrderBook) VWAP() float64 {
	if ob.totalVolume == 0 {
		return 0
	}
	return ob.totalTurnover / float64(ob.totalVolume)
}

func (ob *OrderBook) BidDepth() int {
	n := 0
	for _, p := range ob.bidKeys {
		n += ob.bids[p].OrderCount()
	}
	return n
}

func (ob *OrderBook) AskDepth() int {
	n := 0
	for _, p := range ob.askKeys {
		n += ob.asks[p].OrderCount()
	}
	return n
}

// Trades returns the append-only trade history for this book.
func (ob *OrderBook) Trades() []*domain.Trade { return ob.trades }
