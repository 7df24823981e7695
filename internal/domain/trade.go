package domain

import (
	"sync/atomic"
	"time"
)

var tradeSeq atomic.Int64

// Trade is an immutable execution record. Price is always the resting
// (maker) order's price, never the taker's.
type Trade struct {
	id            int64
	symbol        string
	buyOrderID    int64
	sellOrderID   int64
	price         float64
	quantity      int64
	timestampNano int64
	capturedAt    time.Time
}

// NewTrade assigns the next trade id and stamps the current instant.
func NewTrade(symbol string, buyOrderID, sellOrderID int64, price float64, qty int64) *Trade {
	return &Trade{
		id:            tradeSeq.Add(1),
		symbol:        symbol,
		buyOrderID:    buyOrderID,
		sellOrderID:   sellOrderID,
		price:         price,
		quantity:      qty,
		timestampNano: time.Now().UnixNano(),
		capturedAt:    time.Now(),
	}
}

func (t *Trade) ID() int64            { return t.id }
func (t *Trade) Symbol() string       { return t.symbol }
func (t *Trade) BuyOrderID() int64    { return t.buyOrderID }
func (t *Trade) SellOrderID() int64   { return t.sellOrderID }
func (t *Trade) Price() float64       { return t.price }
func (t *Trade) Quantity() int64      { return t.quantity }
func (t *Trade) TimestampNano() int64 { return t.timestampNano }
func (t *Trade) CapturedAt() time.Time { return t.capturedAt }

// Notional returns price * quantity.
func (t *Trade) Notional() float64 { return t.price * float64(t.quantity) }
