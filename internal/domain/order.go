// Package domain holds the core entities of the matching engine: Order,
// Trade, Snapshot and Event. Types here carry identity and lifecycle state
// only; matching logic lives in internal/book.
package domain

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/myronova/obx/internal/errs"
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Type is one of the four order types the engine understands.
type Type string

const (
	Limit  Type = "LIMIT"
	Market Type = "MARKET"
	IOC    Type = "IOC"
	FOC    Type = "FOC"
)

// Status is the lifecycle state of an order.
type Status string

const (
	New             Status = "NEW"
	Open            Status = "OPEN"
	PartiallyFilled Status = "PARTIALLY_FILLED"
	Filled          Status = "FILLED"
	Cancelled       Status = "CANCELLED"
	Rejected        Status = "REJECTED"
)

var orderSeq atomic.Int64

// Order is an immutable identity plus mutable execution state. Mutation is
// only ever performed by the book that owns the order while processing a
// single submission on the submitter's goroutine.
type Order struct {
	id            int64
	symbol        string
	side          Side
	orderType     Type
	price         float64
	originalQty   int64
	remainingQty  int64
	filledQty     int64
	status        Status
	timestampNano int64
}

// NewOrder validates its arguments and constructs a new order with status
// NEW. Validation failure returns an *errs.ValidationError; the order never
// reaches a book in that case.
func NewOrder(symbol string, side Side, orderType Type, price float64, qty int64) (*Order, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errs.NewValidation("symbol cannot be blank")
	}
	if side != Buy && side != Sell {
		return nil, errs.NewValidationf("side must be BUY or SELL, got %q", side)
	}
	switch orderType {
	case Limit, Market, IOC, FOC:
	default:
		return nil, errs.NewValidationf("unknown order type %q", orderType)
	}
	if qty <= 0 {
		return nil, errs.NewValidationf("quantity must be positive, got %d", qty)
	}
	if orderType != Market && price <= 0 {
		return nil, errs.NewValidationf("%s order must have a positive price, got %v", orderType, price)
	}

	return &Order{
		id:            orderSeq.Add(1),
		symbol:        symbol,
		side:          side,
		orderType:     orderType,
		price:         price,
		originalQty:   qty,
		remainingQty:  qty,
		filledQty:     0,
		status:        New,
		timestampNano: time.Now().UnixNano(),
	}, nil
}

// Fill reduces remaining quantity and increases filled quantity by qty,
// moving status to PARTIALLY_FILLED or FILLED. Panics with an
// *errs.InvariantError on a quantity that would violate
// original_qty = remaining_qty + filled_qty — unreachable from validated
// input, recovered at the book boundary.
func (o *Order) Fill(qty int64) {
	if qty <= 0 || qty > o.remainingQty {
		panic(errs.NewInvariantf("invalid fill qty %d for order #%d with remaining %d", qty, o.id, o.remainingQty))
	}
	o.remainingQty -= qty
	o.filledQty += qty
	if o.remainingQty == 0 {
		o.status = Filled
	} else {
		o.status = PartiallyFilled
	}
}

// Cancel marks the order CANCELLED. Panics with an *errs.InvariantError if
// called on an already FILLED order.
func (o *Order) Cancel() {
	if o.status == Filled {
		panic(errs.NewInvariantf("cannot cancel filled order #%d", o.id))
	}
	o.status = Cancelled
}

// MarkOpen transitions a resting order to OPEN.
func (o *Order) MarkOpen() { o.status = Open }

// MarkRejected transitions to terminal REJECTED status.
func (o *Order) MarkRejected() { o.status = Rejected }

func (o *Order) ID() int64            { return o.id }
func (o *Order) Symbol() string       { return o.symbol }
func (o *Order) Side() Side           { return o.side }
func (o *Order) Type() Type           { return o.orderType }
func (o *Order) Price() float64       { return o.price }
func (o *Order) OriginalQty() int64   { return o.originalQty }
func (o *Order) RemainingQty() int64  { return o.remainingQty }
func (o *Order) FilledQty() int64     { return o.filledQty }
func (o *Order) Status() Status       { return o.status }
func (o *Order) TimestampNano() int64 { return o.timestampNano }

func (o *Order) IsFilled() bool    { return o.status == Filled }
func (o *Order) IsCancelled() bool { return o.status == Cancelled }
func (o *Order) IsActive() bool {
	return o.status == Open || o.status == PartiallyFilled || o.status == New
}
