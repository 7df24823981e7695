// Package httpapi exposes the Exchange facade over HTTP, grounded on
// olyamironova-exchange-engine/internal/api/http.HTTPServer (gin,
// request-ID dedup, a rate-limiter middleware) but narrowed to four
// operations: submit, cancel, snapshot and a liveness probe. This layer
// performs no matching logic; it only translates DTOs and delegates to the
// Exchange facade.
package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/dto"
	"github.com/myronova/obx/internal/engine"
	"github.com/myronova/obx/internal/logging"
	"github.com/myronova/obx/internal/middleware"
)

// Server wraps an Exchange facade with a gin router.
type Server struct {
	exchange *engine.Exchange
	log      *logging.Logger

	mu   sync.Mutex
	seen map[string]dto.SubmitOrderResponse
}

func NewServer(x *engine.Exchange, log *logging.Logger) *Server {
	return &Server{
		exchange: x,
		log:      log,
		seen:     make(map[string]dto.SubmitOrderResponse),
	}
}

// Router builds the gin engine with routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	rl := middleware.NewRateLimiter(time.Millisecond)
	r.Use(rl.Middleware())

	r.GET("/healthz", s.healthz)
	r.POST("/orders", s.submitOrder)
	r.POST("/orders/cancel", s.cancelOrder)
	r.GET("/snapshot", s.getSnapshot)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) submitOrder(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	} else {
		s.mu.Lock()
		if cached, ok := s.seen[req.RequestID]; ok {
			s.mu.Unlock()
			c.JSON(http.StatusOK, cached)
			return
		}
		s.mu.Unlock()
	}

	price, _ := req.Price.Float64()
	qty := req.Quantity.IntPart()

	o, err := domain.NewOrder(req.Symbol, domain.Side(req.Side), domain.Type(req.Type), price, qty)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	trades, err := s.exchange.Submit(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp := dto.SubmitOrderResponse{
		RequestID: req.RequestID,
		OrderID:   o.ID(),
		Status:    string(o.Status()),
		Remaining: decimal.NewFromInt(o.RemainingQty()),
		Trades:    convertTrades(trades),
	}

	s.mu.Lock()
	s.seen[req.RequestID] = resp
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

func (s *Server) cancelOrder(c *gin.Context) {
	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ok := s.exchange.Cancel(req.Symbol, req.OrderID)
	c.JSON(http.StatusOK, dto.CancelOrderResponse{Cancelled: ok})
}

func (s *Server) getSnapshot(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
		return
	}
	snap, ok := s.exchange.Snapshot(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no snapshot for " + symbol})
		return
	}
	c.JSON(http.StatusOK, dto.SnapshotResponse{
		Symbol:         snap.Symbol,
		BestBid:        decimal.NewFromFloat(snap.BestBid),
		BestAsk:        decimal.NewFromFloat(snap.BestAsk),
		Spread:         decimal.NewFromFloat(snap.Spread),
		Mid:            decimal.NewFromFloat(snap.Mid),
		LastTradePrice: decimal.NewFromFloat(snap.LastTradePrice),
		VWAP:           decimal.NewFromFloat(snap.VWAP),
		TotalVolume:    snap.TotalVolume,
		BidDepth:       snap.BidDepth,
		AskDepth:       snap.AskDepth,
		CapturedAt:     snap.CapturedAt,
	})
}

func convertTrades(trades []*domain.Trade) []dto.Trade {
	out := make([]dto.Trade, len(trades))
	for i, t := range trades {
		out[i] = dto.Trade{
			ID:        t.ID(),
			BuyOrder:  t.BuyOrderID(),
			SellOrder: t.SellOrderID(),
			Price:     decimal.NewFromFloat(t.Price()),
			Quantity:  decimal.NewFromInt(t.Quantity()),
			Timestamp: t.CapturedAt(),
		}
	}
	return out
}
