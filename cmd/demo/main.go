// Command demo is a scripted scenario runner that feeds a handful of orders
// through the Exchange facade and renders the resulting book/snapshot state
// to stdout, grounded on the shape of scenario runners such as
// Puneet-Vishnoi-order-matching-engine's cmd/app, adapted to this engine's
// four order types and Snapshot fields.
package main

import (
	"fmt"

	"github.com/myronova/obx/internal/domain"
	"github.com/myronova/obx/internal/engine"
	"github.com/myronova/obx/internal/logging"
)

func main() {
	log := logging.NewNop()
	exchange := engine.NewExchange(log)
	defer exchange.Shutdown()

	fmt.Println("=== scenario: LIMIT exact fill at maker price ===")
	submit(exchange, "TEST", domain.Sell, domain.Limit, 100.0, 100)
	report(exchange, submit(exchange, "TEST", domain.Buy, domain.Limit, 101.0, 100))
	printSnapshot(exchange, "TEST")

	fmt.Println("\n=== scenario: partial fill rests remainder ===")
	submit(exchange, "TEST", domain.Sell, domain.Limit, 100.0, 50)
	report(exchange, submit(exchange, "TEST", domain.Buy, domain.Limit, 100.0, 150))
	printSnapshot(exchange, "TEST")

	fmt.Println("\n=== scenario: MARKET sweeps across price levels ===")
	submit(exchange, "MKT", domain.Sell, domain.Limit, 100.0, 40)
	submit(exchange, "MKT", domain.Sell, domain.Limit, 101.0, 40)
	report(exchange, submit(exchange, "MKT", domain.Buy, domain.Market, 0, 60))
	printSnapshot(exchange, "MKT")

	fmt.Println("\n=== scenario: IOC partial then cancel remainder ===")
	submit(exchange, "IOC", domain.Sell, domain.Limit, 100.0, 60)
	report(exchange, submit(exchange, "IOC", domain.Buy, domain.IOC, 100.0, 200))
	printSnapshot(exchange, "IOC")

	fmt.Println("\n=== scenario: resting order cancellation ===")
	resting := submit(exchange, "TEST", domain.Buy, domain.Limit, 99.0, 25)
	report(exchange, resting)
	printSnapshot(exchange, "TEST")
	cancelled := exchange.Cancel("TEST", resting.ID())
	fmt.Printf("cancel order #%d: cancelled=%v status=%s\n", resting.ID(), cancelled, resting.Status())
	printSnapshot(exchange, "TEST")

	fmt.Println("\n=== scenario: multi-symbol books are independent ===")
	submit(exchange, "OBX", domain.Sell, domain.Limit, 50.0, 10)
	report(exchange, submit(exchange, "OBX", domain.Buy, domain.Limit, 50.0, 10))
	printSnapshot(exchange, "OBX")
	printSnapshot(exchange, "TEST")

	fmt.Println("\n=== scenario: FOC cancelled when liquidity insufficient ===")
	submit(exchange, "TEST", domain.Sell, domain.Limit, 100.0, 50)
	report(exchange, submit(exchange, "TEST", domain.Buy, domain.FOC, 100.0, 200))
	printSnapshot(exchange, "TEST")

	fmt.Println("\n=== scenario: VWAP across a sweep ===")
	submit(exchange, "TEST", domain.Sell, domain.Limit, 100.0, 100)
	submit(exchange, "TEST", domain.Sell, domain.Limit, 102.0, 100)
	report(exchange, submit(exchange, "TEST", domain.Buy, domain.Limit, 102.0, 200))
	printSnapshot(exchange, "TEST")

	orders, trades, dropped := exchange.Stats()
	fmt.Printf("\n--- totals: orders=%d trades=%d dropped_events=%d\n", orders, trades, dropped)
}

func submit(x *engine.Exchange, symbol string, side domain.Side, typ domain.Type, price float64, qty int64) *domain.Order {
	o, err := domain.NewOrder(symbol, side, typ, price, qty)
	if err != nil {
		fmt.Printf("rejected: %v\n", err)
		return nil
	}
	if _, err := x.Submit(o); err != nil {
		fmt.Printf("submit failed: %v\n", err)
	}
	return o
}

func report(x *engine.Exchange, o *domain.Order) {
	if o == nil {
		return
	}
	fmt.Printf("order #%d %s %s status=%s remaining=%d filled=%d\n",
		o.ID(), o.Side(), o.Type(), o.Status(), o.RemainingQty(), o.FilledQty())
}

func printSnapshot(x *engine.Exchange, symbol string) {
	snap, ok := x.Snapshot(symbol)
	if !ok {
		fmt.Println("no snapshot yet")
		return
	}
	fmt.Printf("snapshot %s: bid=%.2f ask=%.2f spread=%.2f mid=%.2f last=%.2f vwap=%.4f vol=%d depth(bid/ask)=%d/%d\n",
		snap.Symbol, snap.BestBid, snap.BestAsk, snap.Spread, snap.Mid,
		snap.LastTradePrice, snap.VWAP, snap.TotalVolume, snap.BidDepth, snap.AskDepth)
}
