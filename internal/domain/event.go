package domain

import "time"

// EventKind identifies one of the five event types the bus carries.
type EventKind string

const (
	EventOrderReceived  EventKind = "ORDER_RECEIVED"
	EventOrderOpen      EventKind = "ORDER_OPEN"
	EventOrderFilled    EventKind = "ORDER_FILLED"
	EventOrderCancelled EventKind = "ORDER_CANCELLED"
	EventTrade          EventKind = "TRADE"
)

// Event is the tagged union published on the event bus. Exactly one of
// Order or Trade is non-nil, matching Kind.
type Event struct {
	Kind        EventKind
	Order       *Order
	Trade       *Trade
	PublishedAt time.Time
}

func NewOrderEvent(kind EventKind, o *Order) Event {
	return Event{Kind: kind, Order: o, PublishedAt: time.Now()}
}

func NewTradeEvent(t *Trade) Event {
	return Event{Kind: EventTrade, Trade: t, PublishedAt: time.Now()}
}
