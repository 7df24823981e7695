// Package book implements the per-symbol limit order book: price levels,
// the sweep-based matching core for all four order types, and cancellation.
package book

import "github.com/myronova/obx/internal/domain"

// PriceLevel is a FIFO queue of resting orders sharing one price, with the
// sum of their remaining quantities cached for O(1) depth reads.
type PriceLevel struct {
	price    float64
	orders   []*domain.Order
	totalQty int64
}

func NewPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{price: price}
}

// Enqueue appends to the tail and adds to the cached total.
func (l *PriceLevel) Enqueue(o *domain.Order) {
	l.orders = append(l.orders, o)
	l.totalQty += o.RemainingQty()
}

// Peek returns the head order, or nil if the level is empty.
func (l *PriceLevel) Peek() *domain.Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// Dequeue removes the head order and subtracts its remaining quantity from
// the cached total.
func (l *PriceLevel) Dequeue() *domain.Order {
	if len(l.orders) == 0 {
		return nil
	}
	head := l.orders[0]
	l.orders = l.orders[1:]
	l.totalQty -= head.RemainingQty()
	return head
}

// OnFill decrements the cached total by qty, used when a partial fill
// consumes part of the head order that remains in place.
func (l *PriceLevel) OnFill(qty int64) {
	l.totalQty -= qty
}

// Remove does a linear scan removing a specific order by id. Returns true
// if found. O(k) in the level's size, acceptable because cancellation is
// rare compared to matching.
func (l *PriceLevel) Remove(orderID int64) bool {
	for i, o := range l.orders {
		if o.ID() == orderID {
			l.totalQty -= o.RemainingQty()
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (l *PriceLevel) IsEmpty() bool      { return len(l.orders) == 0 }
func (l *PriceLevel) OrderCount() int    { return len(l.orders) }
func (l *PriceLevel) TotalQty() int64    { return l.totalQty }
func (l *PriceLevel) Price() float64     { return l.price }
