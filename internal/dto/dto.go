// Package dto holds the wire request/response shapes for the HTTP facade,
// grounded on olyamironova-exchange-engine/internal/api/dto but repointed
// at this engine's four order types, with decimal-stringified price and
// quantity fields so callers never depend on the core's float64 arithmetic.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitOrderRequest is the wire shape for POST /orders. RequestID is an
// optional client-supplied idempotency key; repeating it returns the first
// response instead of submitting twice.
type SubmitOrderRequest struct {
	RequestID string          `json:"request_id,omitempty"`
	Symbol    string          `json:"symbol" binding:"required"`
	Side      string          `json:"side" binding:"required"`
	Type      string          `json:"type" binding:"required"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

type SubmitOrderResponse struct {
	RequestID string          `json:"request_id"`
	OrderID   int64           `json:"order_id"`
	Status    string          `json:"status"`
	Remaining decimal.Decimal `json:"remaining"`
	Trades    []Trade         `json:"trades"`
}

type CancelOrderRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	OrderID int64  `json:"order_id" binding:"required"`
}

type CancelOrderResponse struct {
	Cancelled bool `json:"cancelled"`
}

type Trade struct {
	ID        int64           `json:"id"`
	BuyOrder  int64           `json:"buy_order_id"`
	SellOrder int64           `json:"sell_order_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Timestamp time.Time       `json:"timestamp"`
}

type SnapshotResponse struct {
	Symbol         string          `json:"symbol"`
	BestBid        decimal.Decimal `json:"best_bid"`
	BestAsk        decimal.Decimal `json:"best_ask"`
	Spread         decimal.Decimal `json:"spread"`
	Mid            decimal.Decimal `json:"mid"`
	LastTradePrice decimal.Decimal `json:"last_trade_price"`
	VWAP           decimal.Decimal `json:"vwap"`
	TotalVolume    int64           `json:"total_volume"`
	BidDepth       int             `json:"bid_depth"`
	AskDepth       int             `json:"ask_depth"`
	CapturedAt     time.Time       `json:"captured_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
